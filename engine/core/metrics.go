package core

const metricsAverageCount uint8 = 30

// Metrics tracks the frame rate and a rolling average of the frame time.
type Metrics struct {
	frameAvgCounter    uint8
	msTimes            [metricsAverageCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.msTimes[m.frameAvgCounter] = frameMS
	if m.frameAvgCounter == metricsAverageCount-1 {
		sum := 0.0
		for _, ms := range m.msTimes {
			sum += ms
		}
		m.msAvg = sum / float64(metricsAverageCount)
	}
	m.frameAvgCounter++
	m.frameAvgCounter %= metricsAverageCount

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all frames.
	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds over the last window.
func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}
