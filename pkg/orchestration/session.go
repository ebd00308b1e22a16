package orchestration

import (
	stderrors "errors"
	"io"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/arthur-debert/apishape/pkg/writers"
)

// session owns one output stream and the writer rendering into it.
type session struct {
	name   string
	stream io.WriteCloser
	writer writers.Writer
}

// openSession writes the header to stream and opens a writer on it. The
// stream belongs to the session from here on, even when the header write
// fails.
func openSession(name string, stream io.WriteCloser, factory writers.Factory, header string) (*session, error) {
	if header != "" {
		if _, err := io.WriteString(stream, header); err != nil {
			_ = stream.Close()
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "write header to %s", name)
		}
	}
	return &session{name: name, stream: stream, writer: factory.Open(stream)}, nil
}

func (s *session) render(assemblies []*metadata.Assembly) error {
	if err := s.writer.WriteAssemblies(assemblies); err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return errors.Wrapf(err, errors.ErrRender, "render %s", s.name)
		}
		return err
	}
	return nil
}

// Close releases the writer, then the stream, and reports both failures.
func (s *session) Close() error {
	var errs []error
	if err := s.writer.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.stream.Close(); err != nil {
		errs = append(errs, errors.Wrapf(err, errors.ErrFileWrite, "close %s", s.name))
	}
	return stderrors.Join(errs...)
}

// release closes s and joins any close failure into *err.
func release(s *session, err *error) {
	if cerr := s.Close(); cerr != nil {
		*err = stderrors.Join(*err, cerr)
	}
}

// nopCloser keeps the run from closing a stream it does not own.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
