package collector

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// MountFilter drops mounts that only add noise to the disk table.
type MountFilter struct {
	ExcludeVirtualFilesystems bool
	ExcludeLoopDevices        bool
	ExcludeSnapMounts         bool
}

// pseudoFS lists filesystem types with no backing storage.
var pseudoFS = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true,
	"tmpfs": true, "cgroup": true, "cgroup2": true, "overlay": true,
	"squashfs": true, "debugfs": true, "tracefs": true, "securityfs": true,
	"pstore": true, "bpf": true, "autofs": true, "mqueue": true,
	"hugetlbfs": true, "configfs": true, "fusectl": true, "ramfs": true,
	"binfmt_misc": true, "efivarfs": true, "nsfs": true, "fuse.portal": true,
}

// Excludes reports whether a mount should be hidden.
func (f MountFilter) Excludes(device, mountPoint, fsType string) bool {
	if f.ExcludeVirtualFilesystems && pseudoFS[fsType] {
		return true
	}
	if f.ExcludeLoopDevices && strings.HasPrefix(device, "/dev/loop") {
		return true
	}
	if f.ExcludeSnapMounts &&
		(strings.HasPrefix(mountPoint, "/snap/") || strings.HasPrefix(mountPoint, "/var/snap/")) {
		return true
	}
	return false
}

// DiskSource samples filesystem usage for every mount that survives the
// filter. Mounts are read from /proc/mounts and sized with statfs.
type DiskSource struct {
	filter    MountFilter
	readLines func(path string) ([]string, error)
	statfs    func(path string, buf *unix.Statfs_t) error
}

// NewDiskSource builds the source. readLines and statfs are injectable
// for tests; nil uses the real kernel interfaces.
func NewDiskSource(filter MountFilter, readLines func(string) ([]string, error), statfs func(string, *unix.Statfs_t) error) *DiskSource {
	if readLines == nil {
		readLines = util.ReadFileLines
	}
	if statfs == nil {
		statfs = unix.Statfs
	}
	return &DiskSource{filter: filter, readLines: readLines, statfs: statfs}
}

func (d *DiskSource) Name() string { return "disk" }

func (d *DiskSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	lines, err := d.readLines("/proc/mounts")
	if err != nil {
		return errUnavailable(d.Name(), err)
	}

	seen := make(map[string]bool)
	var mounts []model.MountUsage
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		device, mountPoint, fsType := fields[0], unescapeMount(fields[1]), fields[2]
		if d.filter.Excludes(device, mountPoint, fsType) {
			continue
		}
		// Bind mounts repeat the device; show each device once.
		if seen[device] && strings.HasPrefix(device, "/dev/") {
			continue
		}

		var st unix.Statfs_t
		if err := d.statfs(mountPoint, &st); err != nil {
			// Stale or privileged mounts fail statfs; skip, don't fail the tick.
			continue
		}
		total := st.Blocks * uint64(st.Bsize)
		if total == 0 {
			continue
		}
		free := st.Bavail * uint64(st.Bsize)
		used := total - st.Bfree*uint64(st.Bsize)

		seen[device] = true
		mounts = append(mounts, model.MountUsage{
			Device:     device,
			MountPoint: mountPoint,
			FSType:     fsType,
			TotalBytes: total,
			UsedBytes:  used,
			FreeBytes:  free,
			UsedPct:    100 * float64(used) / float64(used+free),
		})
	}

	sort.Slice(mounts, func(i, j int) bool { return mounts[i].MountPoint < mounts[j].MountPoint })
	snap.Mounts = mounts
	return nil
}

// unescapeMount decodes the octal escapes /proc/mounts uses for spaces
// and tabs in mount points.
func unescapeMount(s string) string {
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(s)
}
