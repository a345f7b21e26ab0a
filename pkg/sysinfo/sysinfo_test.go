package sysinfo

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOSRelease(t *testing.T) {
	cases := map[string]string{
		"NAME=\"Ubuntu\"\nVERSION=\"24.04.1 LTS (Noble Numbat)\"\nPRETTY_NAME=\"Ubuntu 24.04.1 LTS\"\n": "Ubuntu 24.04.1 LTS",
		"# comment\nNAME='Alpine Linux'\nVERSION=3.20\n":                                                "Alpine Linux 3.20",
		"NAME=Arch Linux\n":                                                                              "Arch Linux",
		"ID=custom\n":                                                                                    "unknown",
		"":                                                                                               "unknown",
	}
	for content, want := range cases {
		require.Equal(t, want, parseOSRelease(strings.NewReader(content)))
	}
}

func TestStat(t *testing.T) {
	info := Stat()

	require.Equal(t, runtime.GOOS, info.OS)
	require.Equal(t, runtime.GOARCH, info.Arch)
	require.Positive(t, info.CPUs)
	require.NotEmpty(t, info.Release)
	require.NotEmpty(t, info.Kernel)
	require.True(t, strings.HasPrefix(info.String(), runtime.GOOS+"/"+runtime.GOARCH))
	require.Contains(t, info.String(), "kernel "+info.Kernel)
}

func TestSysInfoString(t *testing.T) {
	info := SysInfo{OS: "linux", Arch: "amd64", Release: "Ubuntu 24.04.1 LTS", Kernel: "6.8.0-45-generic", CPUs: 8}
	require.Equal(t, "linux/amd64 (Ubuntu 24.04.1 LTS, kernel 6.8.0-45-generic, 8 CPUs)", info.String())
}
