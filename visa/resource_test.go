package visa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResource(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		want     string
		wantErr  bool
	}{
		{
			name:     "FullForm",
			resource: "TCPIP0::192.168.0.10::5025::SOCKET",
			want:     "192.168.0.10:5025",
		},
		{
			name:     "NoBoardIndex",
			resource: "TCPIP::192.168.0.10::5025::SOCKET",
			want:     "192.168.0.10:5025",
		},
		{
			name:     "DefaultPort",
			resource: "TCPIP0::vna.lab.local::SOCKET",
			want:     "vna.lab.local:5025",
		},
		{
			name:     "CustomPort",
			resource: "TCPIP0::10.0.0.5::4880::SOCKET",
			want:     "10.0.0.5:4880",
		},
		{
			name:     "LowercaseClass",
			resource: "tcpip0::10.0.0.5::socket",
			want:     "10.0.0.5:5025",
		},
		{
			name:     "BareHostPort",
			resource: "127.0.0.1:5025",
			want:     "127.0.0.1:5025",
		},
		{
			name:     "GPIBRejected",
			resource: "GPIB0::16::INSTR",
			wantErr:  true,
		},
		{
			name:     "InstrClassRejected",
			resource: "TCPIP0::192.168.0.10::INSTR",
			wantErr:  true,
		},
		{
			name:     "EmptyHost",
			resource: "TCPIP0::::SOCKET",
			wantErr:  true,
		},
		{
			name:     "PortOutOfRange",
			resource: "TCPIP0::10.0.0.5::70000::SOCKET",
			wantErr:  true,
		},
		{
			name:     "NonNumericPort",
			resource: "TCPIP0::10.0.0.5::abc::SOCKET",
			wantErr:  true,
		},
		{
			name:     "BareHostNoPort",
			resource: "justahostname",
			wantErr:  true,
		},
		{
			name:     "Empty",
			resource: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseResource(tt.resource)
			if tt.wantErr {
				var rerr *ResourceError
				require.ErrorAs(t, err, &rerr)
				assert.Equal(t, tt.resource, rerr.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}
