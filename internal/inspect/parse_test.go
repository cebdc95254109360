package inspect

import (
	"io/fs"
	"testing"
)

const sshdDumpFixture = `port 22
addressfamily any
listenaddress [::]:22
listenaddress 0.0.0.0:22
usepam yes
logingracetime 120
maxauthtries 6
maxsessions 10
permitrootlogin without-password
passwordauthentication yes
pubkeyauthentication yes
kbdinteractiveauthentication no
protocol 2
banner none
`

const ufwVerboseFixture = `Status: active
Logging: on (low)
Default: deny (incoming), allow (outgoing), disabled (routed)
New profiles: skip

To                         Action      From
--                         ------      ----
22/tcp                     ALLOW IN    Anywhere
80/tcp                     ALLOW IN    Anywhere
443                        ALLOW IN    Anywhere
22/tcp (v6)                ALLOW IN    Anywhere (v6)
80/tcp (v6)                ALLOW IN    Anywhere (v6)
443 (v6)                   ALLOW IN    Anywhere (v6)
`

const ssListenFixture = `Netid State  Recv-Q Send-Q  Local Address:Port  Peer Address:Port Process
udp   UNCONN 0      0       127.0.0.53%lo:53    0.0.0.0:*
tcp   LISTEN 0      128     0.0.0.0:22          0.0.0.0:*
tcp   LISTEN 0      511     *:80                *:*
tcp   LISTEN 0      128     [::]:22             [::]:*
tcp   LISTEN 0      4096    127.0.0.1:61208     0.0.0.0:*
`

const ssEstablishedFixture = `Recv-Q Send-Q  Local Address:Port   Peer Address:Port
0      0       10.0.0.5:22          203.0.113.9:52514
0      36      10.0.0.5:22          198.51.100.3:55310
`

func TestParseSSHConfig(t *testing.T) {
	cfg := parseSSHConfig(sshdDumpFixture)

	tests := []struct {
		key  string
		want string
	}{
		{"port", "22"},
		{"permitrootlogin", "without-password"},
		{"passwordauthentication", "yes"},
		{"pubkeyauthentication", "yes"},
		{"maxauthtries", "6"},
		{"logingracetime", "120"},
		{"protocol", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := cfg[tt.key]; got != tt.want {
				t.Errorf("cfg[%q] = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, ok := cfg["permittunnel"]; ok {
		t.Error("unexpected key permittunnel in parsed config")
	}
}

func TestParseSSHConfig_Empty(t *testing.T) {
	cfg := parseSSHConfig("")
	if len(cfg) != 0 {
		t.Errorf("parseSSHConfig(empty) = %v, want empty map", cfg)
	}
}

func TestParseUFWStatus(t *testing.T) {
	state := parseUFWStatus(ufwVerboseFixture)

	if !state.Active {
		t.Error("Active = false, want true")
	}
	if state.DefaultIncoming != "deny" {
		t.Errorf("DefaultIncoming = %q, want 'deny'", state.DefaultIncoming)
	}
	if state.DefaultOutgoing != "allow" {
		t.Errorf("DefaultOutgoing = %q, want 'allow'", state.DefaultOutgoing)
	}

	want := []int{22, 80, 443}
	if len(state.AllowedPorts) != len(want) {
		t.Fatalf("AllowedPorts = %v, want %v", state.AllowedPorts, want)
	}
	for i, port := range want {
		if state.AllowedPorts[i] != port {
			t.Errorf("AllowedPorts[%d] = %d, want %d", i, state.AllowedPorts[i], port)
		}
	}
}

func TestParseUFWStatus_Inactive(t *testing.T) {
	state := parseUFWStatus("Status: inactive\n")

	if state.Active {
		t.Error("Active = true, want false")
	}
	if len(state.AllowedPorts) != 0 {
		t.Errorf("AllowedPorts = %v, want empty", state.AllowedPorts)
	}
}

func TestParsePasswdRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		info, err := parsePasswdRecord("admin:x:1000:1000:Admin User:/home/admin:/bin/bash")
		if err != nil {
			t.Fatalf("parsePasswdRecord() error = %v", err)
		}
		if info.Name != "admin" {
			t.Errorf("Name = %q, want 'admin'", info.Name)
		}
		if info.UID != 1000 {
			t.Errorf("UID = %d, want 1000", info.UID)
		}
		if info.Home != "/home/admin" {
			t.Errorf("Home = %q, want '/home/admin'", info.Home)
		}
		if info.Shell != "/bin/bash" {
			t.Errorf("Shell = %q, want '/bin/bash'", info.Shell)
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		if _, err := parsePasswdRecord("garbage"); err == nil {
			t.Error("parsePasswdRecord() should fail on malformed record")
		}
	})

	t.Run("non-numeric uid", func(t *testing.T) {
		if _, err := parsePasswdRecord("x:x:abc:1:c:/home/x:/bin/sh"); err == nil {
			t.Error("parsePasswdRecord() should fail on non-numeric uid")
		}
	})
}

func TestInGroup(t *testing.T) {
	info := &UserInfo{Groups: []string{"admin", "sudo", "docker"}}

	if !info.InGroup("sudo") {
		t.Error("InGroup(sudo) = false, want true")
	}
	if info.InGroup("wheel") {
		t.Error("InGroup(wheel) = true, want false")
	}
}

func TestParseStatMeta(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    fs.FileMode
		isDir   bool
		wantErr bool
	}{
		{"directory", "directory 700", 0o700, true, false},
		{"regular file", "regular file 600", 0o600, false, false},
		{"empty file", "regular empty file 644", 0o644, false, false},
		{"world readable dir", "directory 755", 0o755, true, false},
		{"missing mode", "directory", 0, false, true},
		{"bad mode", "regular file 9z9", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, isDir, err := parseStatMeta(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseStatMeta(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if mode != tt.mode {
				t.Errorf("mode = %o, want %o", mode, tt.mode)
			}
			if isDir != tt.isDir {
				t.Errorf("isDir = %v, want %v", isDir, tt.isDir)
			}
		})
	}
}

func TestCountEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"only comments", "# managed by ansible\n# do not edit\n", 0},
		{"two keys", "ssh-ed25519 AAAA ops@laptop\n\nssh-rsa BBBB backup@bastion\n", 2},
		{"key after comment", "# personal\nssh-ed25519 CCCC dev@desk\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countEntries(tt.content); got != tt.want {
				t.Errorf("countEntries() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseSockets(t *testing.T) {
	sockets := parseSockets(ssListenFixture)

	if len(sockets) != 5 {
		t.Fatalf("parseSockets() returned %d sockets, want 5", len(sockets))
	}

	first := sockets[0]
	if first.Protocol != "udp" || first.Port != 53 {
		t.Errorf("sockets[0] = %+v, want udp port 53", first)
	}

	// IPv6 bracket form
	var foundV6 bool
	for _, s := range sockets {
		if s.Address == "::" && s.Port == 22 {
			foundV6 = true
		}
	}
	if !foundV6 {
		t.Error("missing [::]:22 socket")
	}
}

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		name  string
		input string
		addr  string
		port  int
		ok    bool
	}{
		{"ipv4", "0.0.0.0:22", "0.0.0.0", 22, true},
		{"wildcard", "*:80", "*", 80, true},
		{"ipv6 brackets", "[::1]:5432", "::1", 5432, true},
		{"ipv6 bare", ":::80", "::", 80, true},
		{"scoped", "127.0.0.53%lo:53", "127.0.0.53%lo", 53, true},
		{"no port", "localhost", "", 0, false},
		{"bad port", "0.0.0.0:x", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, port, ok := splitHostPort(tt.input)
			if ok != tt.ok {
				t.Fatalf("splitHostPort(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if addr != tt.addr || port != tt.port {
				t.Errorf("splitHostPort(%q) = %q, %d, want %q, %d", tt.input, addr, port, tt.addr, tt.port)
			}
		})
	}
}

func TestCountEstablished(t *testing.T) {
	if got := countEstablished(ssEstablishedFixture); got != 2 {
		t.Errorf("countEstablished() = %d, want 2", got)
	}

	if got := countEstablished("Recv-Q Send-Q Local Address:Port Peer Address:Port\n"); got != 0 {
		t.Errorf("countEstablished(header only) = %d, want 0", got)
	}
}

func TestFilterLines(t *testing.T) {
	journal := `Aug 24 09:12:01 vps sshd[312]: Accepted publickey for admin from 203.0.113.9
Aug 24 10:44:13 vps sshd[377]: Failed password for root from 198.51.100.7 port 40112 ssh2
Aug 24 10:44:19 vps sshd[377]: Failed password for root from 198.51.100.7 port 40113 ssh2

Aug 24 11:02:55 vps sshd[401]: Accepted publickey for admin from 203.0.113.9
`

	failed := filterLines(journal, "Failed password")
	if len(failed) != 2 {
		t.Errorf("filterLines(Failed password) = %d lines, want 2", len(failed))
	}

	accepted := filterLines(journal, "Accepted")
	if len(accepted) != 2 {
		t.Errorf("filterLines(Accepted) = %d lines, want 2", len(accepted))
	}

	if got := filterLines(journal, "Invalid user"); len(got) != 0 {
		t.Errorf("filterLines(no match) = %v, want empty", got)
	}
}
