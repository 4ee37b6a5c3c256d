package bandbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Resources_StringArray(t *testing.T) {
	res := Resources{
		KeyNames: {"Queen", "ABBA"},
		"empty":  {},
	}

	t.Run("present", func(t *testing.T) {
		assert := assert.New(t)

		actual, err := res.StringArray(KeyNames)

		assert.NoError(err)
		assert.Equal([]string{"Queen", "ABBA"}, actual)
	})

	t.Run("present but empty", func(t *testing.T) {
		assert := assert.New(t)

		actual, err := res.StringArray("empty")

		assert.NoError(err)
		assert.Empty(actual)
	})

	t.Run("missing", func(t *testing.T) {
		assert := assert.New(t)

		_, err := res.StringArray(KeyDescriptions)

		assert.ErrorIs(err, ErrResourceNotFound)
		assert.EqualError(err, `"band_descriptions": the requested resource does not exist`)
	})

	t.Run("returns copy", func(t *testing.T) {
		actual, _ := res.StringArray(KeyNames)
		actual[0] = "Kiss"

		assert.Equal(t, "Queen", res[KeyNames][0])
	})
}

func Test_Resources_Keys(t *testing.T) {
	res := Resources{
		KeyNames:        nil,
		KeyDescriptions: nil,
		"another":       nil,
	}

	assert.Equal(t, []string{"another", KeyDescriptions, KeyNames}, res.Keys())
}

func Test_ParseLogProvider(t *testing.T) {
	testCases := []struct {
		input     string
		expect    LogProvider
		expectErr bool
	}{
		{input: "", expect: NoLog},
		{input: "none", expect: NoLog},
		{input: "jellog", expect: Jellog},
		{input: "JELLOG", expect: Jellog},
		{input: "std", expect: StdLog},
		{input: "syslog", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseLogProvider(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}
