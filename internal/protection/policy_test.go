package protection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_SuppressKey(t *testing.T) {
	policy := NewPolicy(nil)
	policy.Install()

	testCases := []struct {
		name  string
		event KeyEvent
		want  bool
	}{
		{name: "F12 is suppressed", event: KeyEvent{Key: "F12"}, want: true},
		{name: "PrintScreen is suppressed", event: KeyEvent{Key: "PrintScreen"}, want: true},
		{name: "view-source chord", event: KeyEvent{Key: "u", Ctrl: true}, want: true},
		{name: "save chord", event: KeyEvent{Key: "s", Ctrl: true}, want: true},
		{name: "print chord", event: KeyEvent{Key: "p", Ctrl: true}, want: true},
		{name: "copy chord", event: KeyEvent{Key: "c", Ctrl: true}, want: true},
		{name: "paste chord", event: KeyEvent{Key: "v", Ctrl: true}, want: true},
		{name: "chord casing does not matter", event: KeyEvent{Key: "C", Ctrl: true}, want: true},
		{name: "plain typing passes", event: KeyEvent{Key: "a"}, want: false},
		{name: "unlisted chord passes", event: KeyEvent{Key: "z", Ctrl: true}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.SuppressKey(tc.event))
		})
	}
}

func TestPolicy_InactiveUntilInstalled(t *testing.T) {
	policy := NewPolicy(nil)

	assert.False(t, policy.SuppressKey(KeyEvent{Key: "F12"}))
	assert.False(t, policy.SuppressContextMenu())

	policy.SetHidden(true)
	assert.False(t, policy.Obscured())

	policy.Install()
	assert.True(t, policy.SuppressKey(KeyEvent{Key: "F12"}))
	assert.True(t, policy.SuppressContextMenu())
}

func TestPolicy_VisibilityObscuring(t *testing.T) {
	policy := NewPolicy(nil)
	policy.Install()

	assert.False(t, policy.Obscured())

	policy.SetHidden(true)
	assert.True(t, policy.Obscured(), "hidden document must be obscured")

	policy.SetHidden(false)
	assert.False(t, policy.Obscured(), "obstruction lifts on return to foreground")
}

func TestPolicy_TeardownClearsEverything(t *testing.T) {
	policy := NewPolicy(nil)
	policy.Install()
	policy.SetHidden(true)

	policy.Teardown()

	assert.False(t, policy.Installed())
	assert.False(t, policy.Obscured())
	assert.False(t, policy.SuppressKey(KeyEvent{Key: "F12"}))
}

func TestPolicy_CustomChordList(t *testing.T) {
	policy := NewPolicy([]string{"Ctrl+X"})
	policy.Install()

	assert.True(t, policy.SuppressKey(KeyEvent{Key: "x", Ctrl: true}))
	assert.False(t, policy.SuppressKey(KeyEvent{Key: "F12"}), "defaults are replaced, not merged")
}
