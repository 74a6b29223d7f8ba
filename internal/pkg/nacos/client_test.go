package nacos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerAddrs(t *testing.T) {
	configs, err := ParseServerAddrs("10.0.0.1:8848, 10.0.0.2:8849")
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "10.0.0.1", configs[0].IpAddr)
	assert.Equal(t, uint64(8849), configs[1].Port)
}

func TestParseServerAddrs_Invalid(t *testing.T) {
	for _, addrs := range []string{"", "localhost", "localhost:port", "a:1:2"} {
		_, err := ParseServerAddrs(addrs)
		assert.Error(t, err, addrs)
	}
}
