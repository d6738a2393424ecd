package apierror_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wizardpacs/adminkit/pkg/apierror"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	notify := apierror.EffectNotify
	tests := []struct {
		name    string
		result  apierror.Result
		kind    apierror.Kind
		effects apierror.Effect
	}{
		{"timeout", apierror.Result{Err: context.DeadlineExceeded}, apierror.Unreachable, notify},
		{"cancelled by caller", apierror.Result{Err: context.Canceled}, apierror.Unreachable, notify},
		{"dns", apierror.Result{Err: &net.DNSError{Err: "no such host", Name: "pacs"}}, apierror.Unreachable, notify},
		{"no status", apierror.Result{}, apierror.Unreachable, notify},
		{"error wins over status", apierror.Result{Status: 401, Err: errors.New("reset")}, apierror.Unreachable, notify},
		{"401", apierror.Result{Status: 401}, apierror.AuthExpired, apierror.EffectInvalidateSession | notify},
		{"403", apierror.Result{Status: 403}, apierror.Forbidden, notify},
		{"404", apierror.Result{Status: 404}, apierror.NotFound, notify},
		{"409", apierror.Result{Status: 409}, apierror.Invalid, apierror.EffectNone},
		{"422", apierror.Result{Status: 422}, apierror.Invalid, apierror.EffectNone},
		{"500", apierror.Result{Status: 500}, apierror.ServerFault, notify},
		{"503", apierror.Result{Status: 503}, apierror.ServerFault, notify},
		{"599", apierror.Result{Status: 599}, apierror.ServerFault, notify},
		{"400", apierror.Result{Status: 400}, apierror.Unknown, notify},
		{"429", apierror.Result{Status: 429}, apierror.Unknown, notify},
		{"302", apierror.Result{Status: 302}, apierror.Unknown, notify},
		{"600", apierror.Result{Status: 600}, apierror.Unknown, notify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := apierror.Classify(tt.result)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.effects, got.Effects)
		})
	}
}

func TestClassify_OnlyAuthExpiredInvalidates(t *testing.T) {
	t.Parallel()

	for status := 100; status < 700; status++ {
		if apierror.IsSuccess(status) {
			continue
		}
		c := apierror.Classify(apierror.Result{Status: status})
		assert.Equal(t, status == 401, c.Effects.Has(apierror.EffectInvalidateSession), "status %d", status)
		assert.Equal(t, c.Kind != apierror.Invalid, c.Effects.Has(apierror.EffectNotify), "status %d", status)
	}
}

func TestEffect(t *testing.T) {
	t.Parallel()

	both := apierror.EffectNotify | apierror.EffectInvalidateSession
	assert.True(t, both.Has(apierror.EffectNotify))
	assert.True(t, both.Has(apierror.EffectInvalidateSession))
	assert.True(t, both.Has(both))
	assert.False(t, apierror.EffectNotify.Has(apierror.EffectInvalidateSession))
	assert.False(t, both.Has(apierror.EffectNone))

	assert.Equal(t, "none", apierror.EffectNone.String())
	assert.Equal(t, "invalidate_session+notify", both.String())
}

func TestKind_Text(t *testing.T) {
	t.Parallel()

	for k := apierror.Unknown; k <= apierror.ServerFault; k++ {
		b, err := k.MarshalText()
		assert.NoError(t, err)

		var back apierror.Kind
		assert.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back)
		assert.NotEmpty(t, k.DefaultMessage())
	}

	var k apierror.Kind
	assert.Error(t, k.UnmarshalText([]byte("teapot")))
	assert.Equal(t, "kind(99)", apierror.Kind(99).String())
	assert.Equal(t, apierror.Unknown.DefaultMessage(), apierror.Kind(99).DefaultMessage())
}
