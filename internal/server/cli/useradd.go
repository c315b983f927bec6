// Package cli implements the useradd command, which creates an account from a
// terminal through the same service the HTTP API uses.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/jobportal/internal/flagx"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

var userFlags = []string{"-fullname", "-email", "-phone", "-role"}

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.PublicUser, error)
}

type UserAdd struct {
	users   Registrar
	in      *bufio.Reader
	out     io.Writer
	stdinFd int
}

func NewUserAdd(users Registrar, in io.Reader, out io.Writer, stdinFd int) *UserAdd {
	return &UserAdd{users: users, in: bufio.NewReader(in), out: out, stdinFd: stdinFd}
}

// Run reads the account fields from args, prompting for whatever is missing,
// and registers the account. The password is always prompted for twice.
func (u *UserAdd) Run(ctx context.Context, args []string) error {
	var in services.RegisterInput
	var role string

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(u.out)
	fs.StringVar(&in.FullName, "fullname", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&role, "role", "", "student or recruiter")
	if err := fs.Parse(flagx.FilterArgs(args, userFlags)); err != nil {
		return err
	}

	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&in.FullName, "Full name"},
		{&in.Email, "Email"},
		{&in.PhoneNumber, "Phone number"},
		{&role, "Role (student/recruiter)"},
	}
	for _, p := range prompts {
		if *p.dst != "" {
			continue
		}
		v, err := GetSimpleText(u.in, p.prompt, u.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	in.Role = models.Role(role)

	pw, err := GetPassword(u.stdinFd, "Password", u.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(u.stdinFd, "Repeat password", u.out)
	if err != nil {
		return err
	}
	if pw != confirm {
		return ErrPasswordMismatch
	}
	in.Password = pw

	user, err := u.users.Register(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(u.out, "Account created successfully for %s (id %s, role %s)\n", user.FullName, user.ID, user.Role)
	return nil
}
