package inspect

import (
	"strings"
	"testing"
)

// FuzzParseSSHConfig tests sshd -T parsing with arbitrary output
func FuzzParseSSHConfig(f *testing.F) {
	f.Add("passwordauthentication no\npermitrootlogin no\nmaxauthtries 3\n")
	f.Add("")
	f.Add("orphankeyword")
	f.Add("PasswordAuthentication  YES \n\n\tpermitrootlogin\tprohibit-password\n")

	f.Fuzz(func(t *testing.T, out string) {
		cfg := parseSSHConfig(out)
		for key := range cfg {
			if key != strings.ToLower(key) {
				t.Errorf("key %q not lowercased", key)
			}
		}
	})
}

// FuzzParseUFWStatus tests ufw status parsing with arbitrary output
func FuzzParseUFWStatus(f *testing.F) {
	f.Add("Status: active\nDefault: deny (incoming), allow (outgoing), disabled (routed)\n22/tcp ALLOW Anywhere\n")
	f.Add("Status: inactive")
	f.Add("")
	f.Add("22 ALLOW\n22/tcp ALLOW IN\n443/udp ALLOW\n80/tcp (v6) ALLOW\n")

	f.Fuzz(func(t *testing.T, out string) {
		state := parseUFWStatus(out)
		for i := 1; i < len(state.AllowedPorts); i++ {
			if state.AllowedPorts[i-1] >= state.AllowedPorts[i] {
				t.Errorf("allowed ports not sorted and deduped: %v", state.AllowedPorts)
			}
		}
	})
}

// FuzzParsePasswdRecord tests getent passwd parsing with arbitrary lines
func FuzzParsePasswdRecord(f *testing.F) {
	f.Add("admin:x:1000:1000:Admin:/home/admin:/bin/bash")
	f.Add("root:x:0:0:root:/root:/bin/bash")
	f.Add("")
	f.Add("broken:record")
	f.Add("a:b:notanumber:0::/home:/bin/sh")

	f.Fuzz(func(t *testing.T, line string) {
		user, err := parsePasswdRecord(line)
		if err != nil {
			return
		}
		if strings.Count(line, ":") < 6 {
			t.Errorf("accepted record with too few fields: %q", line)
		}
		if user == nil {
			t.Error("nil user without error")
		}
	})
}

// FuzzParseSockets tests ss -tuln parsing with arbitrary output
func FuzzParseSockets(f *testing.F) {
	f.Add("Netid State Recv-Q Send-Q Local-Address:Port Peer-Address:Port\ntcp LISTEN 0 128 0.0.0.0:22 0.0.0.0:*\n")
	f.Add("tcp LISTEN 0 4096 [::1]:5432 [::]:*\nudp UNCONN 0 0 :::68 :::*\n")
	f.Add("")
	f.Add("garbage LISTEN line")

	f.Fuzz(func(t *testing.T, out string) {
		for _, socket := range parseSockets(out) {
			if socket.Protocol == "" {
				t.Error("socket with empty protocol")
			}
		}
	})
}

// FuzzSplitHostPort tests ss address splitting with arbitrary input
func FuzzSplitHostPort(f *testing.F) {
	f.Add("0.0.0.0:22")
	f.Add("[::1]:5432")
	f.Add(":::80")
	f.Add("*:8080")
	f.Add("[::1")
	f.Add("noport")

	f.Fuzz(func(t *testing.T, localAddr string) {
		addr, port, ok := splitHostPort(localAddr)
		if ok && !strings.ContainsAny(localAddr, "0123456789") {
			t.Errorf("split %q into (%q, %d) without any digits", localAddr, addr, port)
		}
	})
}
