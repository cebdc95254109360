// Package posture audits the security posture of a hardened Ubuntu host.
//
// Posture verifies SSH hardening, the ufw firewall, the admin account,
// SSH key permissions, monitoring daemons, listening sockets, and
// journald authentication history.
package posture
