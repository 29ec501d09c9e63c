package diag

import "testing"

func TestSinksAreUsable(t *testing.T) {
	for _, s := range []Sink{Discard(), Glog()} {
		s.Debug("debug %d", 1)
		s.Info("info %s", "x")
		s.Notice("notice")
		s.Warning("warning %v", nil)
	}
}
