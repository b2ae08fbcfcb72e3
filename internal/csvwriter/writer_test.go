package csvwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/ginjaninja78/kf2ate/internal/config"
)

func TestWriterShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, config.CSVSettings{Encoding: "Shift_JIS", Delimiter: ','}, 3)
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"宛名区分", "印字区分", "名前"}))
	require.NoError(t, w.WriteRow([]string{"0", "1", "山田, 太郎"}))
	require.NoError(t, w.Close())
	assert.Equal(t, 1, w.Rows())

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "宛名区分,印字区分,名前\n0,1,\"山田, 太郎\"\n", string(decoded))
}

func TestWriterCRLF(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, config.CSVSettings{Encoding: "UTF-8", UseCRLF: true}, 2)
	require.NoError(t, err)

	require.NoError(t, w.WriteRow([]string{"a", ""}))
	require.NoError(t, w.Close())
	assert.Equal(t, "a,\r\n", buf.String())
}

func TestWriterRejectsWrongWidth(t *testing.T) {
	w, err := New(&bytes.Buffer{}, config.CSVSettings{Encoding: "UTF-8"}, 2)
	require.NoError(t, err)

	require.Error(t, w.WriteRow([]string{"a"}))
	assert.Equal(t, 0, w.Rows())
}

func TestWriterUnencodableRune(t *testing.T) {
	w, err := New(&bytes.Buffer{}, config.CSVSettings{Encoding: "Shift_JIS"}, 1)
	require.NoError(t, err)

	require.NoError(t, w.WriteRow([]string{"山田"}))
	err = w.WriteRow([]string{"😀"})
	require.ErrorContains(t, err, "row 2")
}

func TestWriterUnknownEncoding(t *testing.T) {
	_, err := New(&bytes.Buffer{}, config.CSVSettings{Encoding: "no-such-encoding"}, 1)
	require.Error(t, err)
}
