// Package playback controls an external video player for the viewer.
// The viewer never guesses the playing state: it mirrors the events
// this package emits when the player process actually starts, pauses,
// resumes, or exits.
package playback

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
)

// State is the playback sub-state reported to the viewer.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// Event is emitted whenever the player's real state changes.
type Event struct {
	State State
	Err   error
}

// Player wraps one external player process per video. Methods are safe
// for concurrent use; events are delivered on the channel returned by
// Events.
type Player struct {
	command string

	mu     sync.Mutex
	cmd    *exec.Cmd
	state  State
	events chan Event
}

// NewPlayer creates a Player using the given player binary ("" means
// mpv).
func NewPlayer(command string) *Player {
	if command == "" {
		command = "mpv"
	}
	return &Player{
		command: command,
		events:  make(chan Event, 8),
	}
}

// Events returns the state event channel.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Play starts playback of src, stopping any previous playback first.
func (p *Player) Play(src string) error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	cmd := exec.Command(p.command, "--really-quiet", "--force-window", src)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	p.cmd = cmd
	p.state = StatePlaying
	p.emit(Event{State: StatePlaying})

	// Watch for the process exiting on its own (end of video, window
	// closed) so the viewer's state follows reality.
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
			p.state = StateStopped
			p.emit(Event{State: StateStopped, Err: exitError(err)})
		}
		p.mu.Unlock()
	}()

	return nil
}

// Toggle switches between playing and paused via process signals.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil || p.cmd.Process == nil {
		return errors.New("no active playback")
	}

	switch p.state {
	case StatePlaying:
		if err := p.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
			return fmt.Errorf("pause: %w", err)
		}
		p.state = StatePaused
		p.emit(Event{State: StatePaused})
	case StatePaused:
		if err := p.cmd.Process.Signal(syscall.SIGCONT); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		p.state = StatePlaying
		p.emit(Event{State: StatePlaying})
	}
	return nil
}

// emit delivers an event without ever blocking the caller; if the
// consumer has fallen 8 events behind, the oldest is dropped.
func (p *Player) emit(e Event) {
	select {
	case p.events <- e:
	default:
		select {
		case <-p.events:
		default:
		}
		p.events <- e
	}
}

// Stop terminates any active playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	cmd := p.cmd
	p.cmd = nil
	p.state = StateStopped

	// A paused process won't handle SIGTERM until resumed.
	cmd.Process.Signal(syscall.SIGCONT)
	cmd.Process.Kill()
}

// exitError filters the expected "killed" error out of normal stops.
func exitError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
