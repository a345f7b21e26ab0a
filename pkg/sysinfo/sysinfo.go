// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package sysinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

const unknown = "unknown"

// SysInfo describes the platform the binary runs on.
type SysInfo struct {
	OS      string // runtime.GOOS
	Arch    string // runtime.GOARCH
	Release string // Distribution or product name, e.g. "ubuntu 24.04"
	Kernel  string
	CPUs    int
}

func (s SysInfo) String() string {
	return fmt.Sprintf("%s/%s (%s, kernel %s, %d CPUs)", s.OS, s.Arch, s.Release, s.Kernel, s.CPUs)
}

// Stat returns the platform information. Fields that cannot be detected are
// set to "unknown".
func Stat() SysInfo {
	info := SysInfo{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Release: unknown,
		Kernel:  unknown,
		CPUs:    runtime.NumCPU(),
	}

	if hi, err := host.Info(); err == nil {
		if release := strings.TrimSpace(hi.Platform + " " + hi.PlatformVersion); release != "" {
			info.Release = release
		}
		if hi.KernelVersion != "" {
			info.Kernel = hi.KernelVersion
		}
	}

	if info.Release == unknown && runtime.GOOS == "linux" {
		if f, err := os.Open("/etc/os-release"); err == nil {
			defer f.Close()
			info.Release = parseOSRelease(f)
		}
	}
	return info
}

// parseOSRelease reads an os-release file, preferring PRETTY_NAME and falling
// back to NAME followed by VERSION.
func parseOSRelease(r io.Reader) string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || strings.HasPrefix(key, "#") {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}

	if name := fields["PRETTY_NAME"]; name != "" {
		return name
	}
	if name := strings.TrimSpace(fields["NAME"] + " " + fields["VERSION"]); name != "" {
		return name
	}
	return unknown
}
