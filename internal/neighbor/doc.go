// Package neighbor reads the operating system's ARP table.
//
// Reader runs the configured command (arp -a by default) and Parse turns
// lines such as "? (192.168.1.5) at a:b:c:1:2:3 on en0 [ethernet]" into an
// address table restricted to one subnet.
package neighbor
