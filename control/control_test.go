//go:build !ios && !android && (amd64 || arm64)

package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	pos       int
	size      int
	locked    bool
	shuffle   bool
	debugPath string
	hardCuts  []bool
	err       error
}

func (f *fakeTarget) move(to int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.pos = to
	return f.pos, nil
}

func (f *fakeTarget) PlayNext() (int, error) { return f.move((f.pos + 1) % f.size) }

func (f *fakeTarget) PlayPrevious() (int, error) { return f.move((f.pos + f.size - 1) % f.size) }

func (f *fakeTarget) PlayLast() (int, error) { return f.move(f.size - 1) }

func (f *fakeTarget) PlayRandom() (int, error) { return f.move(2) }

func (f *fakeTarget) Shuffle() (bool, error) { return f.shuffle, f.err }

func (f *fakeTarget) PresetLocked() (bool, error) {
	return f.locked, f.err
}

func (f *fakeTarget) SetPosition(index int, hardCut bool) (int, error) {
	f.hardCuts = append(f.hardCuts, hardCut)
	return f.move(index)
}

func (f *fakeTarget) SetShuffle(on bool) error {
	if f.err != nil {
		return f.err
	}
	f.shuffle = on
	return nil
}

func (f *fakeTarget) SetPresetLocked(locked bool) error {
	if f.err != nil {
		return f.err
	}
	f.locked = locked
	return nil
}

func (f *fakeTarget) WriteDebugImageOnNextFrame(path string) error {
	f.debugPath = path
	return f.err
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
		err  error
	}{
		{"next", Command{Action: ActionNext}, nil},
		{"  PREV ", Command{Action: ActionPrevious}, nil},
		{"position 12", Command{Action: ActionPosition, Value: "12"}, nil},
		{"debug-image /tmp/frame.bmp", Command{Action: ActionDebugImage, Value: "/tmp/frame.bmp"}, nil},
		{"explode", Command{}, ErrUnknownAction},
		{"", Command{}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "next", Command{Action: ActionNext}.String())
	assert.Equal(t, "position 3", Command{Action: ActionPosition, Value: "3"}.String())
}

func TestApplyNavigation(t *testing.T) {
	f := &fakeTarget{size: 5}

	res, err := Apply(Command{Action: ActionNext}, f)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Position)

	res, err = Apply(Command{Action: ActionPrevious}, f)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Position)

	res, err = Apply(Command{Action: ActionLast}, f)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Position)

	res, err = Apply(Command{Action: ActionRandom}, f)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Position)

	res, err = Apply(Command{Action: ActionPosition, Value: "3"}, f)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Position)
	assert.Equal(t, []bool{true}, f.hardCuts)
}

func TestApplyInvalidPosition(t *testing.T) {
	f := &fakeTarget{size: 5}
	for _, v := range []string{"", "abc", "-1"} {
		_, err := Apply(Command{Action: ActionPosition, Value: v}, f)
		assert.ErrorIs(t, err, ErrInvalidValue, v)
	}
	assert.Empty(t, f.hardCuts)
}

func TestApplyLock(t *testing.T) {
	f := &fakeTarget{size: 1}

	res, err := Apply(Command{Action: ActionLock}, f)
	require.NoError(t, err)
	require.NotNil(t, res.Locked)
	assert.True(t, *res.Locked)
	assert.Equal(t, -1, res.Position)

	_, err = Apply(Command{Action: ActionToggleLock}, f)
	require.NoError(t, err)
	assert.False(t, f.locked)

	_, err = Apply(Command{Action: ActionToggleLock}, f)
	require.NoError(t, err)
	assert.True(t, f.locked)

	_, err = Apply(Command{Action: ActionUnlock}, f)
	require.NoError(t, err)
	assert.False(t, f.locked)
}

func TestApplyShuffle(t *testing.T) {
	f := &fakeTarget{size: 1}

	res, err := Apply(Command{Action: ActionShuffle}, f)
	require.NoError(t, err)
	require.NotNil(t, res.Shuffle)
	assert.True(t, *res.Shuffle)

	_, err = Apply(Command{Action: ActionShuffle, Value: "on"}, f)
	require.NoError(t, err)
	assert.True(t, f.shuffle)

	_, err = Apply(Command{Action: ActionShuffle, Value: "off"}, f)
	require.NoError(t, err)
	assert.False(t, f.shuffle)

	_, err = Apply(Command{Action: ActionShuffle, Value: "sideways"}, f)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestApplyDebugImage(t *testing.T) {
	f := &fakeTarget{}
	_, err := Apply(Command{Action: ActionDebugImage, Value: "/tmp/x.bmp"}, f)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.bmp", f.debugPath)
}

func TestApplyUnknown(t *testing.T) {
	_, err := Apply(Command{Action: "explode"}, &fakeTarget{})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestApplyWrapsTargetErrors(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeTarget{size: 3, err: boom}

	res, err := Apply(Command{Action: ActionNext}, f)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, -1, res.Position)

	_, err = Apply(Command{Action: ActionToggleLock}, f)
	assert.ErrorIs(t, err, boom)
}

func TestEveryActionIsValid(t *testing.T) {
	for _, a := range Actions {
		assert.True(t, a.Valid(), a)
	}
	assert.False(t, Action("nope").Valid())
}

func TestDeckWithoutPlaylist(t *testing.T) {
	d := Deck{}
	_, err := d.PlayNext()
	assert.ErrorIs(t, err, ErrNoPlaylist)
	_, err = d.SetPosition(1, true)
	assert.ErrorIs(t, err, ErrNoPlaylist)
	assert.ErrorIs(t, d.SetShuffle(true), ErrNoPlaylist)

	_, err = Apply(Command{Action: ActionShuffle}, d)
	assert.ErrorIs(t, err, ErrNoPlaylist)
}
