package settings_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/settings"
)

type RecordTestSuite struct {
	suite.Suite
	schema *settings.Schema
	record *settings.Record
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}

func (s *RecordTestSuite) SetupTest() {
	schema, err := settings.NewSchema("shaman_rotation",
		settings.FieldSpec{Name: "weaveFlameShock", Kind: settings.KindBool, Default: true},
		settings.FieldSpec{Name: "primaryShock", Kind: settings.KindEnum, Default: 1},
		settings.FieldSpec{Name: "weaveReactionTime", Kind: settings.KindNumber, Default: 200.0},
		settings.FieldSpec{Name: "customRotation", Kind: settings.KindSet, Default: []int{3, 1}},
		settings.FieldSpec{Name: "lavaburstWeave", Kind: settings.KindBool},
	)
	s.Require().NoError(err)
	s.schema = schema
	s.record = settings.NewRecord(schema)
}

func (s *RecordTestSuite) TestDefaults() {
	s.True(s.record.Bool("weaveFlameShock"))
	s.Equal(int32(1), s.record.Enum("primaryShock"))
	s.Equal(200.0, s.record.Number("weaveReactionTime"))
	s.Equal(settings.NewSet(1, 3), s.record.Set("customRotation"))
	s.False(s.record.Bool("lavaburstWeave"))
	s.Equal(uint64(0), s.record.Version())
}

func (s *RecordTestSuite) TestEveryFieldResolves() {
	for _, name := range s.record.FieldNames() {
		v, err := s.record.GetField(name)
		s.NoError(err, name)
		if name != "customRotation" {
			s.NotNil(v, name)
		}
	}
}

func (s *RecordTestSuite) TestSetField() {
	testCases := []struct {
		name    string
		field   string
		value   any
		want    any
		wantErr bool
	}{
		{name: "bool", field: "lavaburstWeave", value: true, want: true},
		{name: "enum from int", field: "primaryShock", value: 2, want: int32(2)},
		{name: "enum from float", field: "primaryShock", value: 2.0, want: int32(2)},
		{name: "number from int", field: "weaveReactionTime", value: 150, want: 150.0},
		{name: "set from any slice", field: "customRotation", value: []any{5.0, 2.0, 5.0}, want: settings.NewSet(2, 5)},
		{name: "wrong kind", field: "lavaburstWeave", value: "yes", wantErr: true},
		{name: "fractional enum", field: "primaryShock", value: 1.5, wantErr: true},
		{name: "unknown field", field: "missing", value: true, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			record := settings.NewRecord(s.schema)
			before := record.Values()

			err := record.SetField(tc.field, tc.value)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				s.Equal(before, record.Values())
				s.Equal(uint64(0), record.Version())
				return
			}

			s.Require().NoError(err)
			got, err := record.GetField(tc.field)
			s.Require().NoError(err)
			s.Equal(tc.want, got)
			s.Equal(uint64(1), record.Version())
		})
	}
}

func (s *RecordTestSuite) TestGetFieldReturnsCopyOfSet() {
	v, err := s.record.GetField("customRotation")
	s.Require().NoError(err)

	set := v.(settings.Set)
	set[0] = 99

	s.Equal(settings.NewSet(1, 3), s.record.Set("customRotation"))
}

func (s *RecordTestSuite) TestLoadIsAtomic() {
	err := s.record.Load(map[string]any{
		"lavaburstWeave": true,
		"primaryShock":   "earth",
	})

	s.Error(err)
	s.False(s.record.Bool("lavaburstWeave"))

	err = s.record.Load(map[string]any{
		"lavaburstWeave": true,
		"primaryShock":   2,
	})
	s.Require().NoError(err)
	s.True(s.record.Bool("lavaburstWeave"))
	s.Equal(int32(2), s.record.Enum("primaryShock"))
	s.Equal(uint64(1), s.record.Version())
}

func (s *RecordTestSuite) TestCloneAndEqual() {
	clone := s.record.Clone()
	s.True(s.record.Equal(clone))

	s.Require().NoError(clone.SetField("customRotation", []int32{7}))
	s.False(s.record.Equal(clone))
	s.Equal(settings.NewSet(1, 3), s.record.Set("customRotation"))
}

func (s *RecordTestSuite) TestReset() {
	s.Require().NoError(s.record.SetField("weaveFlameShock", false))
	s.record.Reset()

	s.True(s.record.Bool("weaveFlameShock"))
	s.Equal(uint64(2), s.record.Version())
}

func (s *RecordTestSuite) TestSchemaValidation() {
	testCases := []struct {
		name   string
		fields []settings.FieldSpec
		errMsg string
	}{
		{
			name: "duplicate field",
			fields: []settings.FieldSpec{
				{Name: "a", Kind: settings.KindBool},
				{Name: "a", Kind: settings.KindNumber},
			},
			errMsg: "declared more than once",
		},
		{
			name:   "bad default",
			fields: []settings.FieldSpec{{Name: "a", Kind: settings.KindBool, Default: 3}},
			errMsg: "expected bool",
		},
		{
			name:   "unknown kind",
			fields: []settings.FieldSpec{{Name: "a", Kind: settings.Kind(42)}},
			errMsg: "unknown kind",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := settings.NewSchema("broken", tc.fields...)
			s.Error(err)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}
