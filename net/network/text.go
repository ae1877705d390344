package network

import "bufio"
import "fmt"
import "io"
import "strconv"
import "strings"

import "github.com/pkg/errors"

import "github.com/neurlang/castrank/activation"
import "github.com/neurlang/castrank/layer"
import "github.com/neurlang/castrank/loss"

// ErrFormat is returned when a network text stream cannot be parsed
var ErrFormat = errors.New("network: malformed text stream")

const header = "castrank-network"

// The text stream is line oriented:
//
//	castrank-network
//	kind feedforward
//	loss mse 0
//	rate 0.05
//	layers 2
//	layer <inputs> <outputs> <activation> <alpha> <pinned>
//	neuron <bias> <weight>...
//
// Floats use the shortest representation that parses back to the same
// value, so a saved network round trips exactly.

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteText writes d to w
func WriteText(w io.Writer, d Descriptor) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, header)
	fmt.Fprintln(bw, "kind", d.Kind)
	fmt.Fprintln(bw, "loss", d.Loss.Kind, formatFloat(d.Loss.Threshold))
	fmt.Fprintln(bw, "rate", formatFloat(d.LearningRate))
	fmt.Fprintln(bw, "layers", len(d.Layers))
	for _, l := range d.Layers {
		fmt.Fprintln(bw, "layer", l.Inputs, len(l.Weights), l.Activation.Kind,
			formatFloat(l.Activation.Alpha), l.PinnedBias)
		for i, row := range l.Weights {
			bw.WriteString("neuron ")
			bw.WriteString(formatFloat(l.Biases[i]))
			for _, v := range row {
				bw.WriteByte(' ')
				bw.WriteString(formatFloat(v))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

type lineReader struct {
	s    *bufio.Scanner
	line int
}

// next returns the fields of the next non-empty line, which must start with keyword
func (r *lineReader) next(keyword string) ([]string, error) {
	for r.s.Scan() {
		r.line++
		fields := strings.Fields(r.s.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] != keyword {
			return nil, errors.Wrapf(ErrFormat, "line %d: expected %q, got %q", r.line, keyword, fields[0])
		}
		return fields[1:], nil
	}
	if err := r.s.Err(); err != nil {
		return nil, errors.Wrap(err, "network: read")
	}
	return nil, errors.Wrapf(ErrFormat, "unexpected end of stream, expected %q", keyword)
}

func (r *lineReader) floats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
		}
		out[i] = v
	}
	return out, nil
}

func (r *lineReader) count(fields []string, n int) error {
	if len(fields) != n {
		return errors.Wrapf(ErrFormat, "line %d: expected %d values, got %d", r.line, n, len(fields))
	}
	return nil
}

// ReadText parses a descriptor written by WriteText
func ReadText(rd io.Reader) (d Descriptor, err error) {
	s := bufio.NewScanner(rd)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	r := &lineReader{s: s}

	if _, err = r.next(header); err != nil {
		return d, err
	}
	f, err := r.next("kind")
	if err != nil {
		return d, err
	}
	if err = r.count(f, 1); err != nil {
		return d, err
	}
	d.Kind = Kind(f[0])

	if f, err = r.next("loss"); err != nil {
		return d, err
	}
	if err = r.count(f, 2); err != nil {
		return d, err
	}
	if d.Loss.Kind, err = loss.ParseKind(f[0]); err != nil {
		return d, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}
	if d.Loss.Threshold, err = strconv.ParseFloat(f[1], 64); err != nil {
		return d, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}

	if f, err = r.next("rate"); err != nil {
		return d, err
	}
	if err = r.count(f, 1); err != nil {
		return d, err
	}
	if d.LearningRate, err = strconv.ParseFloat(f[0], 64); err != nil {
		return d, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}

	if f, err = r.next("layers"); err != nil {
		return d, err
	}
	if err = r.count(f, 1); err != nil {
		return d, err
	}
	nlayers, err := strconv.Atoi(f[0])
	if err != nil || nlayers <= 0 {
		return d, errors.Wrapf(ErrFormat, "line %d: bad layer count %q", r.line, f[0])
	}
	for i := 0; i < nlayers; i++ {
		l, err := r.layer()
		if err != nil {
			return d, errors.Wrapf(err, "layer %d", i)
		}
		d.Layers = append(d.Layers, l)
	}
	return d, nil
}

func (r *lineReader) layer() (l layer.Descriptor, err error) {
	f, err := r.next("layer")
	if err != nil {
		return l, err
	}
	if err = r.count(f, 5); err != nil {
		return l, err
	}
	if l.Inputs, err = strconv.Atoi(f[0]); err != nil || l.Inputs <= 0 {
		return l, errors.Wrapf(ErrFormat, "line %d: bad input count %q", r.line, f[0])
	}
	outputs, err := strconv.Atoi(f[1])
	if err != nil || outputs <= 0 {
		return l, errors.Wrapf(ErrFormat, "line %d: bad output count %q", r.line, f[1])
	}
	if l.Activation.Kind, err = activation.ParseKind(f[2]); err != nil {
		return l, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}
	if l.Activation.Alpha, err = strconv.ParseFloat(f[3], 64); err != nil {
		return l, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}
	if l.PinnedBias, err = strconv.ParseBool(f[4]); err != nil {
		return l, errors.Wrapf(ErrFormat, "line %d: %v", r.line, err)
	}
	for n := 0; n < outputs; n++ {
		f, err := r.next("neuron")
		if err != nil {
			return l, err
		}
		if err = r.count(f, l.Inputs+1); err != nil {
			return l, err
		}
		v, err := r.floats(f)
		if err != nil {
			return l, err
		}
		l.Biases = append(l.Biases, v[0])
		l.Weights = append(l.Weights, v[1:])
	}
	return l, nil
}
