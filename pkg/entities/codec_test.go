package entities

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecAgreesWithEncodingJSON(t *testing.T) {
	cases := map[string]struct {
		body   string
		target func() any
		fail   bool
	}{
		"status":          {body: statusJSON, target: func() any { return new(Status) }},
		"account":         {body: accountJSON, target: func() any { return new(Account) }},
		"notification":    {body: string(notificationJSON("reblog", true)), target: func() any { return new(RawNotification) }},
		"tag":             {body: `{"name":"go","url":"u"}`, target: func() any { return new(Tag) }},
		"missing field":   {body: `{"id":"1"}`, target: func() any { return new(Account) }, fail: true},
		"bad media kind":  {body: `{"type":"audio","url":"u","preview_url":"p"}`, target: func() any { return new(MediaAttachment) }, fail: true},
		"string nullbool": {body: `"x"`, target: func() any { return new(NullBool) }, fail: true},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			viaCodec, viaStd := c.target(), c.target()
			errCodec := codec.Unmarshal([]byte(c.body), viaCodec)
			errStd := json.Unmarshal([]byte(c.body), viaStd)

			if c.fail {
				var decErr *DecodeError
				assert.True(t, errors.As(errCodec, &decErr), "codec: %v", errCodec)
				assert.Error(t, errStd)
				return
			}
			require.NoError(t, errCodec)
			require.NoError(t, errStd)
			assert.Equal(t, viaStd, viaCodec)
		})
	}
}

func TestNotificationMarshalMatchesEncodingJSON(t *testing.T) {
	n, err := DecodeNotification(notificationJSON("favourite", true))
	require.NoError(t, err)

	viaCodec, err := codec.Marshal(n)
	require.NoError(t, err)
	viaStd, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, string(viaStd), string(viaCodec))
}
