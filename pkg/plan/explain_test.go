package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/ddlplan/pkg/errors"
)

func TestLookup_ShowConnectors(t *testing.T) {
	spec, err := Lookup(KindShowConnectors)
	require.NoError(t, err)

	assert.Equal(t, "Show Connectors", spec.DisplayName)
	for _, l := range AllLevels {
		assert.True(t, spec.VisibleAt(l), l.String())
	}

	tests := []struct {
		level    Level
		expected []string
	}{
		{LevelUser, []string{"pattern"}},
		{LevelDefault, []string{"pattern"}},
		{LevelExtended, []string{"pattern", "resultDestination"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, spec.VisibleFieldNames(tt.level))
		})
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	spec, err := Lookup(KindShowConnectors)
	require.NoError(t, err)

	spec.Fields[0].Levels[0] = LevelExtended
	spec.Levels = nil

	again, err := Lookup(KindShowConnectors)
	require.NoError(t, err)
	assert.Equal(t, []string{"pattern"}, again.VisibleFieldNames(LevelUser))
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("show_nothing")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnimplemented, errors.GetCode(err))
}

func TestRegister(t *testing.T) {
	err := Register(KindShowConnectors, ExplainSpec{DisplayName: "dup"})
	assert.True(t, errors.IsInvalidRequest(err))

	err = Register("", ExplainSpec{})
	assert.True(t, errors.IsInvalidRequest(err))

	require.NoError(t, Register("test_hidden_at_user", ExplainSpec{
		DisplayName: "Hidden",
		Levels:      Levels{LevelExtended},
		Fields:      []FieldSpec{{Name: "a", Label: "a", Levels: AllLevels}},
	}))
	spec, err := Lookup("test_hidden_at_user")
	require.NoError(t, err)
	assert.Empty(t, spec.VisibleFieldNames(LevelUser))
	assert.Equal(t, []string{"a"}, spec.VisibleFieldNames(LevelExtended))
}

func TestVisibleFields(t *testing.T) {
	desc := NewShowConnectorsDesc(MustPath("/tmp/out.res"), strPtr("sales_*"))

	t.Run("user", func(t *testing.T) {
		fields, err := VisibleFields(desc, LevelUser)
		require.NoError(t, err)
		assert.Equal(t, []string{"pattern"}, fields.Keys())

		v, ok := fields.Get("pattern")
		assert.True(t, ok)
		assert.Equal(t, "sales_*", v)
	})

	t.Run("extended", func(t *testing.T) {
		fields, err := VisibleFields(desc, LevelExtended)
		require.NoError(t, err)
		assert.Equal(t, []string{"pattern", "result file"}, fields.Keys())

		v, ok := fields.Get("result file")
		assert.True(t, ok)
		assert.Equal(t, "/tmp/out.res", v)
	})

	t.Run("nil pattern is omitted", func(t *testing.T) {
		fields, err := VisibleFields(NewShowConnectorsDesc(MustPath("/tmp/out2.res"), nil), LevelExtended)
		require.NoError(t, err)
		assert.Equal(t, []string{"result file"}, fields.Keys())
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		wantErr  bool
	}{
		{"user", LevelUser, false},
		{"USER", LevelUser, false},
		{"", LevelDefault, false},
		{"default", LevelDefault, false},
		{" Extended ", LevelExtended, false},
		{"verbose", LevelDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsInvalidRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}
