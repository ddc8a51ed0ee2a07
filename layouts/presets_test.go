package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-binscan/structure"
)

func decode(t *testing.T, name, data string) ([]structure.Record, int) {
	t.Helper()

	l, err := GetPresetByName(name)
	require.NoError(t, err)
	fields, err := l.Build()
	require.NoError(t, err)
	records, used, err := structure.Decode([]byte(data), fields, structure.Options{Count: l.Count})
	require.NoError(t, err)
	return records, used
}

func TestPresets_allBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			l, err := GetPresetByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, l.Name)
			_, err = l.Build()
			assert.NoError(t, err)
		})
	}
}

func TestXrefPreset(t *testing.T) {
	records, used := decode(t, "xref", "0000000000 65535 f\r\n0000000017 00000 n \nxref")
	require.Len(t, records, 2)
	assert.Equal(t, 40, used)
	assert.Equal(t, "free", records[0].Values["state"])
	assert.Equal(t, uint64(17), records[1].Values["offset"])
	assert.Equal(t, uint64(0), records[1].Values["generation"])
}

func TestSubsectionPreset(t *testing.T) {
	records, used := decode(t, "subsection", "0 6\r\n0000000000 65535 f\r\n")
	require.Len(t, records, 1)
	assert.Equal(t, 5, used)
	assert.Equal(t, uint64(0), records[0].Values["first"])
	assert.Equal(t, uint64(6), records[0].Values["count"])
}

func TestHeaderPreset(t *testing.T) {
	records, used := decode(t, "header", "%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
	require.Len(t, records, 1)
	assert.Equal(t, 9, used)
	assert.Equal(t, uint64(1), records[0].Values["major"])
	assert.Equal(t, uint64(7), records[0].Values["minor"])

	records, _ = decode(t, "header", "%!PS-Adobe-3.0\n")
	assert.Empty(t, records)
}

func TestStartxrefPreset(t *testing.T) {
	records, _ := decode(t, "startxref", "startxref\r\n116\r\n%%EOF")
	require.Len(t, records, 1)
	assert.Equal(t, uint64(116), records[0].Values["offset"])
}

func TestGetPresetByName_unknown(t *testing.T) {
	_, err := GetPresetByName("trailer")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestGetPresetByName_fresh(t *testing.T) {
	a, err := GetPresetByName("xref")
	require.NoError(t, err)
	a.Fields = nil
	b, err := GetPresetByName("xref")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Fields)
}

func TestApplyPreset(t *testing.T) {
	target := &structure.Layout{Name: "custom", Count: 3}
	ApplyPreset(target, HeaderPreset())
	assert.Equal(t, "header", target.Name)
	assert.Equal(t, 1, target.Count)
	assert.Len(t, target.Fields, 5)

	target = XrefPreset()
	ApplyPreset(target, &structure.Layout{Count: 2})
	assert.Equal(t, "xref", target.Name)
	assert.Equal(t, 2, target.Count)
	assert.Len(t, target.Fields, 6)
}
