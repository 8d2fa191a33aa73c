package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := prof.Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := prof.Start(cfg)
	test.Ok(t, err)
	test.Ok(t, s.Stop())
	test.Ok(t, s.Stop(), test.Context("second Stop"))

	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		info, err := os.Stat(path)
		test.Ok(t, err, test.Context("stat %s", path))
		test.True(t, info.Size() > 0, test.Context("%s is empty", path))
	}
}

func TestStartFailsCleanly(t *testing.T) {
	dir := t.TempDir()
	_, err := prof.Start(prof.Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	test.Err(t, err)

	// the CPU profiler was released, so a new session can start
	s, err := prof.Start(prof.Config{CPU: filepath.Join(dir, "cpu2.out")})
	test.Ok(t, err)
	test.Ok(t, s.Stop())
}

func TestNilSession(t *testing.T) {
	var s *prof.Session
	test.Ok(t, s.Stop())
}
