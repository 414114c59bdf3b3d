package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/dto"
	stmtsvc "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

var errUsage = errors.New("invalid usage")

// PasswordReader prompts for a secret.
type PasswordReader func(prompt string, in io.Reader, out io.Writer) (string, error)

// CLI dispatches subcommands to the application services.
type CLI struct {
	App      *app.App
	In       io.Reader
	Out      io.Writer
	Password PasswordReader
}

type command struct {
	usage string
	run   func(c *CLI, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":  {"register --name NAME --email EMAIL", (*CLI).register},
	"login":     {"login --email EMAIL", (*CLI).login},
	"deposit":   {"deposit --email EMAIL --amount N --description TEXT", (*CLI).deposit},
	"withdraw":  {"withdraw --email EMAIL --amount N --description TEXT", (*CLI).withdraw},
	"transfer":  {"transfer --email EMAIL --to EMAIL --amount N --description TEXT", (*CLI).transfer},
	"balance":   {"balance --email EMAIL", (*CLI).balance},
	"statement": {"statement --email EMAIL --id STATEMENT_ID", (*CLI).statement},
}

var commandOrder = []string{"register", "login", "deposit", "withdraw", "transfer", "balance", "statement"}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cli <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

// Run executes args[0] with the remaining args as its flags.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage(c.Out)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(c.Out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(c, ctx, args[1:])
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func required(fs *flag.FlagSet, values map[string]string) error {
	var missing []string
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing %s", errUsage, strings.Join(missing, ", "))
	}
	return nil
}

// authenticate prompts for email's password and returns the verified user.
func (c *CLI) authenticate(ctx context.Context, email string) (*dto.UserRead, error) {
	password, err := c.Password("Password: ", c.In, c.Out)
	if err != nil {
		return nil, err
	}
	return c.App.AuthService.Login(ctx, email, password)
}

func (c *CLI) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", c.Out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, map[string]string{"name": *name, "email": *email}); err != nil {
		return err
	}
	password, err := c.Password("Choose a password: ", c.In, c.Out)
	if err != nil {
		return err
	}
	u, err := c.App.UserService.CreateUser(ctx, *name, *email, password)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.Out, "Registered %s <%s> id=%s\n", u.Name, u.Email, u.ID)
	return nil
}

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", c.Out)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, map[string]string{"email": *email}); err != nil {
		return err
	}
	u, err := c.authenticate(ctx, *email)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.Out, "Authenticated %s id=%s\n", u.Name, u.ID)
	return nil
}

type operationFlags struct {
	email       *string
	amount      *string
	description *string
}

func bindOperationFlags(fs *flag.FlagSet) operationFlags {
	return operationFlags{
		email:       fs.String("email", "", "acting user's email"),
		amount:      fs.String("amount", "", "amount in minor units"),
		description: fs.String("description", "", "statement description"),
	}
}

func (f operationFlags) check(fs *flag.FlagSet) (int64, error) {
	if err := required(fs, map[string]string{
		"email":       *f.email,
		"amount":      *f.amount,
		"description": *f.description,
	}); err != nil {
		return 0, err
	}
	amount, err := utils.ParseMinorUnits(*f.amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errUsage, err)
	}
	return amount, nil
}

func (c *CLI) deposit(ctx context.Context, args []string) error {
	return c.createStatement(ctx, "deposit", statement.Deposit, args)
}

func (c *CLI) withdraw(ctx context.Context, args []string) error {
	return c.createStatement(ctx, "withdraw", statement.Withdraw, args)
}

func (c *CLI) createStatement(
	ctx context.Context,
	name string,
	opType statement.OperationType,
	args []string,
) error {
	fs := newFlagSet(name, c.Out)
	f := bindOperationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := f.check(fs)
	if err != nil {
		return err
	}
	u, err := c.authenticate(ctx, *f.email)
	if err != nil {
		return err
	}
	st, err := c.App.StatementService.CreateStatement(ctx, stmtsvc.CreateStatementInput{
		UserID:      u.ID,
		Amount:      amount,
		Description: *f.description,
		Type:        opType,
	})
	if err != nil {
		return err
	}
	c.printStatement(st, u.ID)
	return nil
}

func (c *CLI) transfer(ctx context.Context, args []string) error {
	fs := newFlagSet("transfer", c.Out)
	f := bindOperationFlags(fs)
	to := fs.String("to", "", "receiver's email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := f.check(fs)
	if err != nil {
		return err
	}
	if err := required(fs, map[string]string{"to": *to}); err != nil {
		return err
	}
	sender, err := c.authenticate(ctx, *f.email)
	if err != nil {
		return err
	}
	receiver, err := c.App.UserService.GetUserByEmail(ctx, *to)
	if err != nil {
		return fmt.Errorf("receiver %s: %w", *to, statement.ErrRecipientUserNotFound)
	}
	st, err := c.App.StatementService.Transfer(ctx, stmtsvc.TransferInput{
		SenderID:    sender.ID,
		ReceiverID:  receiver.ID,
		Amount:      amount,
		Description: *f.description,
	})
	if err != nil {
		return err
	}
	c.printStatement(st, sender.ID)
	return nil
}

func (c *CLI) balance(ctx context.Context, args []string) error {
	fs := newFlagSet("balance", c.Out)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, map[string]string{"email": *email}); err != nil {
		return err
	}
	u, err := c.authenticate(ctx, *email)
	if err != nil {
		return err
	}
	b, err := c.App.StatementService.GetBalance(ctx, u.ID)
	if err != nil {
		return err
	}
	color.New(color.Bold).Fprintf(c.Out, "Balance: %d\n", b.Balance)
	for _, st := range b.Statement {
		c.printStatement(st, u.ID)
	}
	return nil
}

func (c *CLI) statement(ctx context.Context, args []string) error {
	fs := newFlagSet("statement", c.Out)
	email := fs.String("email", "", "email address")
	id := fs.String("id", "", "statement id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, map[string]string{"email": *email, "id": *id}); err != nil {
		return err
	}
	statementID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("%w: --id must be a UUID", errUsage)
	}
	u, err := c.authenticate(ctx, *email)
	if err != nil {
		return err
	}
	st, err := c.App.StatementService.GetStatement(ctx, u.ID, statementID)
	if err != nil {
		return err
	}
	c.printStatement(st, u.ID)
	return nil
}

// printStatement writes one line per statement, green when it credits
// viewer and red when it debits them.
func (c *CLI) printStatement(st *dto.StatementRead, viewer uuid.UUID) {
	effect := st.ToDomain().Effect(viewer)
	paint := color.New(color.FgGreen)
	if effect < 0 {
		paint = color.New(color.FgRed)
	}
	paint.Fprintf(c.Out, "%s  %-8s %+d  %s  %s\n",
		st.CreatedAt.Format("2006-01-02 15:04:05"),
		st.Type,
		effect,
		st.Description,
		st.ID,
	)
}

// terminalPassword reads a password without echo when in is a terminal and
// a single line otherwise.
func terminalPassword(prompt string, in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		return string(b), err
	}
	return readLine(in)
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
