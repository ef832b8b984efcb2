package capture

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

// MicOption configures a Mic source.
type MicOption func(*Mic)

// WithMicSampleRate sets the capture sample rate in Hz.
func WithMicSampleRate(rate float64) MicOption {
	return func(m *Mic) {
		if rate > 0 {
			m.sampleRate = rate
		}
	}
}

// WithMicBlockSize sets the capture block size in samples.
func WithMicBlockSize(size int) MicOption {
	return func(m *Mic) {
		if size > 0 {
			m.blockSize = size
		}
	}
}

// WithMicDevice selects the input device by case-insensitive name
// substring. Empty keeps the system default.
func WithMicDevice(name string) MicOption {
	return func(m *Mic) {
		m.deviceName = name
	}
}

// Mic captures mono audio from a PortAudio input device.
type Mic struct {
	sampleRate float64
	blockSize  int
	deviceName string

	stream *portaudio.Stream
	out    chan []float64
	drops  atomic.Uint64
	done   chan struct{}
}

// NewMic initializes PortAudio and opens the configured input device.
func NewMic(opts ...MicOption) (*Mic, error) {
	m := &Mic{
		sampleRate: 44100,
		blockSize:  512,
		out:        make(chan []float64, 2),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture init portaudio: %w", err)
	}

	dev, err := m.findDevice()
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = m.sampleRate
	params.FramesPerBuffer = m.blockSize

	stream, err := portaudio.OpenStream(params, m.onInput)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("capture open stream: %w", err)
	}

	m.stream = stream

	return m, nil
}

func (m *Mic) findDevice() (*portaudio.DeviceInfo, error) {
	if m.deviceName == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("capture default input device: %w", err)
		}

		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture list devices: %w", err)
	}

	needle := strings.ToLower(m.deviceName)
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 && strings.Contains(strings.ToLower(dev.Name), needle) {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("capture input device not found: %q", m.deviceName)
}

func (m *Mic) onInput(in []float32) {
	select {
	case <-m.done:
		return
	default:
	}

	block := make([]float64, len(in))
	for i, s := range in {
		block[i] = float64(s)
	}

	offer(m.out, block, &m.drops)
}

// SampleRate returns the capture sample rate in Hz.
func (m *Mic) SampleRate() float64 {
	return m.sampleRate
}

// Dropped reports blocks discarded because the consumer lagged.
func (m *Mic) Dropped() uint64 {
	return m.drops.Load()
}

// Blocks starts the stream and returns the block channel. The channel is
// closed when ctx is cancelled.
func (m *Mic) Blocks(ctx context.Context) (<-chan []float64, error) {
	if err := m.stream.Start(); err != nil {
		return nil, fmt.Errorf("capture start stream: %w", err)
	}

	go func() {
		<-ctx.Done()
		close(m.done)
		_ = m.stream.Stop()
		close(m.out)
	}()

	return m.out, nil
}

// Close tears down the stream and PortAudio.
func (m *Mic) Close() error {
	if err := m.stream.Close(); err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("capture close stream: %w", err)
	}

	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("capture terminate portaudio: %w", err)
	}

	return nil
}

// InputDevice describes an available audio capture device.
type InputDevice struct {
	Name        string
	HostAPI     string
	MaxChannels int
	DefaultRate float64
}

// ListInputDevices enumerates PortAudio devices with input channels.
func ListInputDevices() ([]InputDevice, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture init portaudio: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture list devices: %w", err)
	}

	var out []InputDevice

	for _, dev := range devices {
		if dev.MaxInputChannels == 0 {
			continue
		}

		info := InputDevice{
			Name:        dev.Name,
			MaxChannels: dev.MaxInputChannels,
			DefaultRate: dev.DefaultSampleRate,
		}
		if dev.HostApi != nil {
			info.HostAPI = dev.HostApi.Name
		}

		out = append(out, info)
	}

	return out, nil
}
