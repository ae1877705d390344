package trainer

import "os"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/net/loader"
import "github.com/neurlang/castrank/net/network"

// Resume loads the network saved at dstmodel when resume is set and the file
// exists, otherwise it returns fresh().
func Resume(resume bool, dstmodel string, fresh func() network.Network) (network.Network, error) {
	if !resume || dstmodel == "" {
		return fresh(), nil
	}
	if _, err := os.Stat(dstmodel); os.IsNotExist(err) {
		return fresh(), nil
	}
	net, err := loader.LoadFile(dstmodel)
	if err != nil {
		return nil, errors.Wrapf(err, "trainer: resume %s", dstmodel)
	}
	return net, nil
}
