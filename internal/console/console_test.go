package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainOutputWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Headerf(IconBuild, "Found %d theme(s): %s", 2, "a, b")
	p.Successf("Compiled: %s", "light-a")
	p.Warnf("Skipping %s: _main.scss not found", "empty")
	p.Failf("Error compiling %s", "dark-b")
	p.Mutedf("done")
	p.Blank()

	want := strings.Join([]string{
		"🔨 Found 2 theme(s): a, b",
		"✅ Compiled: light-a",
		"⚠️  Skipping empty: _main.scss not found",
		"❌ Error compiling dark-b",
		"done",
		"",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestDiscard(t *testing.T) {
	p := Discard()
	p.Successf("nothing")
	p.Infof(IconWatch, "still nothing")
}

func TestSize(t *testing.T) {
	assert.Equal(t, "0 B", Size(0))
	assert.Equal(t, "0 B", Size(-5))
	assert.Equal(t, "1.5 kB", Size(1500))
}

func TestAge(t *testing.T) {
	assert.Equal(t, "at an unknown time", Age(time.Time{}))
	assert.Equal(t, "3 hours ago", Age(time.Now().Add(-3*time.Hour-time.Minute)))
}

func TestList(t *testing.T) {
	assert.Equal(t, "[light-ocean] - [dark-ocean]", List([]string{"light-ocean", "dark-ocean"}))
	assert.Equal(t, "[]", List(nil))
}
