// Package audio plays the looping background track.
package audio

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoDevice is returned when the audio device could not be opened.
var ErrNoDevice = errors.New("audio device not ready")

// Player plays one looping track.
type Player interface {
	// PlayLoop starts path from the beginning and repeats it until Close.
	PlayLoop(path string) error
	// Update refills the stream buffers; call it once per frame.
	Update()
	Close()
}

// Music streams a track through raylib's audio device.
type Music struct {
	volume  float32
	music   rl.Music
	playing bool
}

// NewMusic opens the audio device.
func NewMusic(volume float32) (*Music, error) {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return nil, ErrNoDevice
	}
	return &Music{volume: volume}, nil
}

func (m *Music) PlayLoop(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("music: %w", err)
	}
	if m.playing {
		rl.StopMusicStream(m.music)
		rl.UnloadMusicStream(m.music)
		m.playing = false
	}
	music := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(music) {
		return fmt.Errorf("music: cannot decode %s", path)
	}
	music.Looping = true
	rl.SetMusicVolume(music, m.volume)
	rl.PlayMusicStream(music)
	m.music = music
	m.playing = true
	return nil
}

func (m *Music) Update() {
	if m.playing {
		rl.UpdateMusicStream(m.music)
	}
}

func (m *Music) Close() {
	if m.playing {
		rl.StopMusicStream(m.music)
		rl.UnloadMusicStream(m.music)
		m.playing = false
	}
	rl.CloseAudioDevice()
}

// Silent is a Player that plays nothing, used when no audio device is available.
type Silent struct{}

func (Silent) PlayLoop(string) error { return nil }
func (Silent) Update()               {}
func (Silent) Close()                {}
