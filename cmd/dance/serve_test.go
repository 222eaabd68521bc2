package main

import "testing"

func TestConnectHint(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "Connect with: ssh localhost -p 23234"},
		{":2222", "Connect with: ssh localhost -p 2222"},
		{"0.0.0.0:2200", "Connect with: ssh localhost -p 2200"},
		{"arcade.example.com:4000", "Connect with: ssh arcade.example.com -p 4000"},
		{"[::]:2022", "Connect with: ssh localhost -p 2022"},
		{"host:22", "Connect with: ssh host"},
		{"nonsense", "Connect with: ssh nonsense"},
	}
	for _, tt := range tests {
		if got := connectHint(tt.addr); got != tt.want {
			t.Errorf("connectHint(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
