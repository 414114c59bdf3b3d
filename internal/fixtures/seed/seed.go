// Package seed loads demo users and opening balances from YAML and applies
// them through the application services.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/domain/statement"
	"github.com/amirasaad/ledger/pkg/domain/user"
	stmtsvc "github.com/amirasaad/ledger/pkg/service/statement"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed string

type Deposit struct {
	Amount      int64  `yaml:"amount"`
	Description string `yaml:"description"`
}

type User struct {
	Name     string    `yaml:"name"`
	Email    string    `yaml:"email"`
	Password string    `yaml:"password"`
	Deposits []Deposit `yaml:"deposits"`
}

type Transfer struct {
	From        string `yaml:"from"`
	To          string `yaml:"to"`
	Amount      int64  `yaml:"amount"`
	Description string `yaml:"description"`
}

// Fixture is the content of a seed file.
type Fixture struct {
	Users     []User     `yaml:"users"`
	Transfers []Transfer `yaml:"transfers"`
}

// Result counts what Apply wrote.
type Result struct {
	UsersCreated int
	UsersSkipped int
	Statements   int
}

// Load reads a fixture from path, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(defaultSeed)
	}
	return parse(r)
}

func parse(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, u := range fx.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("invalid seed file: user %d needs email and password", i)
		}
	}
	return &fx, nil
}

// Apply creates the fixture's users with their deposits, then its transfers.
// Users whose email is already registered are skipped along with their
// deposits, and transfers are only applied when the sender was created by
// this call, so running Apply twice writes nothing the second time.
func Apply(ctx context.Context, a *app.App, fx *Fixture, logger *slog.Logger) (Result, error) {
	var res Result
	created := make(map[string]uuid.UUID)

	for _, fu := range fx.Users {
		u, err := a.UserService.CreateUser(ctx, fu.Name, fu.Email, fu.Password)
		if errors.Is(err, user.ErrUserAlreadyExists) {
			logger.Info("Seed user exists, skipping", "email", fu.Email)
			res.UsersSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", fu.Email, err)
		}
		res.UsersCreated++
		created[u.Email] = u.ID

		for _, d := range fu.Deposits {
			if _, err := a.StatementService.CreateStatement(ctx, stmtsvc.CreateStatementInput{
				UserID:      u.ID,
				Amount:      d.Amount,
				Description: d.Description,
				Type:        statement.Deposit,
			}); err != nil {
				return res, fmt.Errorf("seed deposit for %s: %w", fu.Email, err)
			}
			res.Statements++
		}
	}

	for _, t := range fx.Transfers {
		senderID, ok := created[user.NormalizeEmail(t.From)]
		if !ok {
			continue
		}
		receiver, err := a.UserService.GetUserByEmail(ctx, t.To)
		if err != nil {
			return res, fmt.Errorf("seed transfer to %s: %w", t.To, err)
		}
		if _, err := a.StatementService.Transfer(ctx, stmtsvc.TransferInput{
			SenderID:    senderID,
			ReceiverID:  receiver.ID,
			Amount:      t.Amount,
			Description: t.Description,
		}); err != nil {
			return res, fmt.Errorf("seed transfer %s -> %s: %w", t.From, t.To, err)
		}
		res.Statements++
	}
	return res, nil
}
