package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileWriteCommand writes the received value to a file.
type FileWriteCommand struct {
	path string
}

// NewFileWriteCommand creates a command writing to path. The file is truncated on every invocation.
func NewFileWriteCommand(path string) *FileWriteCommand {
	return &FileWriteCommand{path: path}
}

// Path returns the file written by the command.
func (c *FileWriteCommand) Path() string {
	return c.path
}

// Describe returns the name of the written file.
func (c *FileWriteCommand) Describe() string {
	return "write " + filepath.Base(c.path)
}

// Accepts reports whether k is text or bytes.
func (c *FileWriteCommand) Accepts(k Kind) bool {
	return k == KindText || k == KindBytes
}

// Produces returns KindUnit.
func (c *FileWriteCommand) Produces() Kind {
	return KindUnit
}

// Invoke writes in to the file and returns Unit.
func (c *FileWriteCommand) Invoke(_ context.Context, in Value) (Value, error) {
	switch in.Kind() {
	case KindText:
		text, _ := in.Text()

		return Unit(), c.writeText(text)
	case KindBytes:
		data, _ := in.Bytes()

		return Unit(), c.writeBytes(data)
	default:
		return Unit(), &UnsupportedTypeError{Kind: in.Kind()}
	}
}

func (c *FileWriteCommand) writeText(text string) (err error) {
	file, err := c.create()
	if err != nil {
		return err
	}
	defer func() {
		err = closeFile(file, err)
	}()

	_, err = file.WriteString(text)

	return errors.Wrapf(err, "unable to write text to %s", c.path)
}

func (c *FileWriteCommand) writeBytes(data []byte) (err error) {
	file, err := c.create()
	if err != nil {
		return err
	}
	defer func() {
		err = closeFile(file, err)
	}()

	_, err = file.Write(data)

	return errors.Wrapf(err, "unable to write bytes to %s", c.path)
}

func (c *FileWriteCommand) create() (*os.File, error) {
	file, err := os.Create(c.path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create file %s", c.path)
	}

	return file, nil
}

func closeFile(file *os.File, err error) error {
	closeErr := file.Close()
	if err != nil {
		return err
	}

	return errors.Wrapf(closeErr, "unable to close file %s", file.Name())
}
