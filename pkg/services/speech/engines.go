package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	htgotts "github.com/hegedustibor/htgo-tts"
)

// CommandSynthesizer speaks through a platform TTS binary. Driving a
// child process keeps utterances cancellable mid-play, which the
// narrator's cancel-on-speak contract requires.
type CommandSynthesizer struct {
	command string
	args    []string
}

func NewCommandSynthesizer(command string, args ...string) *CommandSynthesizer {
	return &CommandSynthesizer{command: command, args: args}
}

// DefaultSynthesizer picks the platform TTS binary: `say` on macOS,
// `espeak-ng`/`espeak` elsewhere. The result may be unsupported; the
// caller decides how to surface that.
func DefaultSynthesizer() Synthesizer {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return NewCommandSynthesizer(c)
		}
	}
	return unsupportedSynthesizer{}
}

// Disabled returns a synthesizer that rejects every utterance.
func Disabled() Synthesizer {
	return unsupportedSynthesizer{}
}

func (s *CommandSynthesizer) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.command, append(s.args, text)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts command %q failed: %w", s.command, err)
	}
	return nil
}

func (s *CommandSynthesizer) Supported() bool {
	_, err := exec.LookPath(s.command)
	return err == nil
}

// OnlineSynthesizer speaks through htgo-tts. Playback cannot be
// interrupted mid-utterance, so cancellation only detaches from it.
type OnlineSynthesizer struct {
	speech htgotts.Speech
}

func NewOnlineSynthesizer(cacheDir, language string) *OnlineSynthesizer {
	return &OnlineSynthesizer{
		speech: htgotts.Speech{Folder: cacheDir, Language: language},
	}
}

func (s *OnlineSynthesizer) Speak(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() {
		done <- s.speech.Speak(text)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("online tts failed: %w", err)
		}
		return nil
	}
}

func (s *OnlineSynthesizer) Supported() bool {
	return true
}

type unsupportedSynthesizer struct{}

func (unsupportedSynthesizer) Speak(context.Context, string) error { return ErrUnsupported }
func (unsupportedSynthesizer) Supported() bool                     { return false }

// CommandRecognizer captures dictation through a configured
// transcription command, taking the first line it prints as the
// transcript.
type CommandRecognizer struct {
	command string
	args    []string
}

func NewCommandRecognizer(command string, args ...string) *CommandRecognizer {
	return &CommandRecognizer{command: command, args: args}
}

func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	if r.command == "" {
		return "", ErrUnsupported
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("transcription command %q failed: %w", r.command, err)
	}

	scanner := bufio.NewScanner(&out)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", fmt.Errorf("transcription command %q produced no transcript", r.command)
}

func (r *CommandRecognizer) Supported() bool {
	if r.command == "" {
		return false
	}
	_, err := exec.LookPath(r.command)
	return err == nil
}
