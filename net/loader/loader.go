// Package loader rebuilds saved networks of any variant
package loader

import "io"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/net/feedforward"
import "github.com/neurlang/castrank/net/network"
import "github.com/neurlang/castrank/net/perceptron"

// ErrKind is returned for a descriptor of an unknown network variant
var ErrKind = errors.New("loader: unknown network kind")

// Build reconstructs the concrete network described by d
func Build(d network.Descriptor) (network.Network, error) {
	var n network.Network
	var err error
	switch d.Kind {
	case network.Perceptron:
		n, err = perceptron.FromDescriptor(d)
	case network.Feedforward:
		n, err = feedforward.FromDescriptor(d)
	default:
		return nil, errors.Wrapf(ErrKind, "%q", d.Kind)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Save writes n as a text stream
func Save(w io.Writer, n network.Network) error {
	return network.WriteText(w, n.Describe())
}

// Load reads a text stream and rebuilds the network
func Load(r io.Reader) (network.Network, error) {
	d, err := network.ReadText(r)
	if err != nil {
		return nil, err
	}
	return Build(d)
}

// SaveFile writes n to a lzw compressed file
func SaveFile(name string, n network.Network) error {
	return network.WriteCompressedToFile(name, n.Describe())
}

// LoadFile reads a lzw compressed file and rebuilds the network
func LoadFile(name string) (network.Network, error) {
	d, err := network.ReadCompressedFromFile(name)
	if err != nil {
		return nil, err
	}
	return Build(d)
}
