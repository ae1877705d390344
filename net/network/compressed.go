package network

import "compress/lzw"
import "io"
import "os"

import "github.com/pkg/errors"

// WriteCompressedToFile writes the descriptor to a lzw file
func WriteCompressedToFile(name string, d Descriptor) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "network: create")
	}
	err = WriteCompressed(file, d)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "network: close")
	}
	return err
}

// WriteCompressed writes the text stream of d through a lzw compressor
func WriteCompressed(w io.Writer, d Descriptor) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := WriteText(lw, d); err != nil {
		lw.Close()
		return err
	}
	return lw.Close()
}

// ReadCompressedFromFile reads a descriptor from a lzw file
func ReadCompressedFromFile(name string) (Descriptor, error) {
	file, err := os.Open(name)
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "network: open")
	}
	defer file.Close()
	return ReadCompressed(file)
}

// ReadCompressed reads a descriptor written by WriteCompressed
func ReadCompressed(r io.Reader) (Descriptor, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	return ReadText(lr)
}
