package ledger

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vjchen03/hsa/internal/models"
)

// DefaultTxnLimit bounds history queries when the caller passes no limit.
const DefaultTxnLimit = 25

// Service is the ledger core: account lifecycle, deposits, card issuance
// and purchase processing. Every multi-step mutation runs inside a single
// database transaction so the balance invariant (balance == deposits -
// approved purchases) holds at every commit point.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a user together with their zero-balance account. If a
// user with the email already exists it is returned unchanged with
// created=false; no second account is ever created.
func (s *Service) Register(email, fullName string) (*models.User, bool, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	user = models.User{Email: email, FullName: fullName}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		acct := models.Account{UserID: user.ID}
		if err := tx.Create(&acct).Error; err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		// lost a race on the unique email index; hand back the winner
		var existing models.User
		if lookupErr := s.db.Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &user, true, nil
}

// UserByEmail looks up a user; ErrNotFound if the email is unknown.
func (s *Service) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

// AccountForUser returns the user's account. Registration creates the
// account atomically with the user, so ErrNotFound here means the user
// id itself is bad.
func (s *Service) AccountForUser(userID uint) (*models.Account, error) {
	var acct models.Account
	if err := s.db.Where("user_id = ?", userID).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return &acct, nil
}

// CardForAccount returns the account's card, or ErrNotFound when none
// has been issued yet.
func (s *Service) CardForAccount(accountID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("account_id = ?", accountID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card for account %d: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup card: %w", err)
	}
	return &card, nil
}

// Deposit credits the account and appends the matching "deposit"
// transaction in one atomic unit. Non-positive amounts are rejected,
// never clamped.
func (s *Service) Deposit(accountID uint, amountCents int64) (*models.Account, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("deposit of %d cents: %w", amountCents, ErrInvalidAmount)
	}

	var acct models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&acct, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
			}
			return fmt.Errorf("load account: %w", err)
		}

		acct.BalanceCents += amountCents
		if err := tx.Model(&models.Account{}).Where("id = ?", acct.ID).
			Update("balance_cents", acct.BalanceCents).Error; err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}

		txn := models.Transaction{
			AccountID:   acct.ID,
			AmountCents: amountCents,
			Category:    models.CategoryDeposit,
			Approved:    true,
			Memo:        "Deposit",
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("record deposit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// IssueCard issues the account's card if it has none yet. Issuing twice
// is a no-op that returns the existing card with newlyIssued=false.
func (s *Service) IssueCard(accountID uint) (*models.Card, bool, error) {
	existing, err := s.CardForAccount(accountID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if err := s.db.First(&models.Account{}, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}
		return nil, false, fmt.Errorf("load account: %w", err)
	}

	card := newCard(accountID, time.Now().UTC())
	if err := s.db.Create(card).Error; err != nil {
		// lost a race on the unique account_id index; hand back the winner
		if winner, lookupErr := s.CardForAccount(accountID); lookupErr == nil {
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("create card: %w", err)
	}
	return card, true, nil
}

// Purchase runs one purchase attempt end to end: authorize against the
// current balance and card presence, append the transaction row whether
// approved or declined, and debit the balance only on approval. All of
// it happens in one database transaction, so two concurrent purchases
// cannot both spend the same funds.
func (s *Service) Purchase(accountID uint, amountCents int64, category models.ExpenseCategory, memo string) (bool, *models.Transaction, error) {
	if amountCents <= 0 {
		return false, nil, fmt.Errorf("purchase of %d cents: %w", amountCents, ErrInvalidAmount)
	}

	var (
		approved bool
		txn      models.Transaction
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var acct models.Account
		if err := tx.First(&acct, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
			}
			return fmt.Errorf("load account: %w", err)
		}

		var card models.Card
		hasCard := tx.Where("account_id = ?", acct.ID).First(&card).Error == nil

		approved = Authorize(hasCard, category, amountCents, acct.BalanceCents)

		// declines are recorded too; the history is the audit trail
		txn = models.Transaction{
			AccountID:   acct.ID,
			AmountCents: amountCents,
			Category:    category,
			Approved:    approved,
			Memo:        memo,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}

		if approved {
			if err := tx.Model(&models.Account{}).Where("id = ?", acct.ID).
				Update("balance_cents", gorm.Expr("balance_cents - ?", amountCents)).Error; err != nil {
				return fmt.Errorf("debit balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return approved, &txn, nil
}

// Transactions lists the account's history newest first, ties broken by
// id descending, bounded by limit.
func (s *Service) Transactions(accountID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTxnLimit
	}
	var txns []models.Transaction
	if err := s.db.Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}
