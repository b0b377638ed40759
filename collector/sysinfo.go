package collector

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// SysInfoSource reports host facts that never change while the process
// runs: hostname, kernel release, boot time. They are gathered once and
// reused on every tick.
type SysInfoSource struct {
	once sync.Once
	info *model.SysInfo
}

func NewSysInfoSource() *SysInfoSource { return &SysInfoSource{} }

func (s *SysInfoSource) Name() string { return "sysinfo" }

func (s *SysInfoSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	s.once.Do(func() {
		info := &model.SysInfo{}
		info.Hostname, _ = os.Hostname()
		if release, err := util.ReadFileString("/proc/sys/kernel/osrelease"); err == nil {
			info.Kernel = strings.TrimSpace(release)
		}
		info.BootTime = bootTime()
		s.info = info
	})
	snap.SysInfo = s.info
	return nil
}

// bootTime derives boot time from the uptime counter. The btime field
// of /proc/stat would also work but uptime needs less parsing.
func bootTime() time.Time {
	raw, err := util.ReadFileString("/proc/uptime")
	if err != nil {
		return time.Time{}
	}
	up, ok := util.FirstNumber(raw)
	if !ok {
		return time.Time{}
	}
	return time.Now().Add(-time.Duration(up * float64(time.Second)))
}
