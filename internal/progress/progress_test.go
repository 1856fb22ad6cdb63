package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinet/internal/nn"
)

func TestLineFormats(t *testing.T) {
	train := Line(nn.Progress{Phase: nn.PhaseTrain, Epoch: 2, Seen: 12000, Total: 24000, Correct: 9000})
	assert.Equal(t, "Epoch:2 #Trained:12,000 Training Accuracy:75.0%", train)

	test := Line(nn.Progress{Phase: nn.PhaseTest, Seen: 50, Total: 200, Correct: 40, Elapsed: 2 * time.Second})
	assert.Equal(t, "Progress:25.0% Speed(reviews/sec):25.0 #Correct:40 #Tested:50 Testing Accuracy:80.0%", test)
}

func TestConsoleThrottlesTestPhase(t *testing.T) {
	var buf bytes.Buffer
	c := Console(&buf, 0.001)
	for i := 1; i <= 100; i++ {
		c.Report(nn.Progress{Phase: nn.PhaseTest, Seen: i, Total: 100, Correct: i})
	}
	out := buf.String()
	// the first line consumes the single burst token, the last always prints
	assert.Equal(t, 2, strings.Count(out, "\r"))
	assert.True(t, strings.HasSuffix(out, "Testing Accuracy:100.0%\n"))
}

func TestConsoleAlwaysPrintsEpochs(t *testing.T) {
	var buf bytes.Buffer
	c := Console(&buf, 0.001)
	for e := 0; e < 3; e++ {
		c.Report(nn.Progress{Phase: nn.PhaseTrain, Epoch: e, Seen: (e + 1) * 10, Total: 30})
	}
	assert.Equal(t, 3, strings.Count(buf.String(), "Epoch:"))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestMultiSkipsNil(t *testing.T) {
	var got []nn.Progress
	r := Multi(nil, nn.ReporterFunc(func(p nn.Progress) { got = append(got, p) }), Metrics())
	r.Report(nn.Progress{Phase: nn.PhaseTrain, Seen: 5, Total: 5, Correct: 5})
	r.Report(nn.Progress{Phase: nn.PhaseTest, Seen: 1, Total: 1})
	require.Len(t, got, 2)
}
