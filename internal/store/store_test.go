package store

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

var testDBSeq atomic.Int64

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Goal{},
		&models.Category{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func newTestUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Test User", Email: email, PasswordHash: "x"}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func newTestAccount(t *testing.T, s *Store, userID uint, name string, balance float64) *models.Account {
	t.Helper()
	account := &models.Account{Name: name, Type: "checking", Balance: balance}
	if err := s.CreateAccount(userID, account); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return account
}

func accountBalance(t *testing.T, s *Store, userID, accountID uint) float64 {
	t.Helper()
	account, err := s.AccountForUser(userID, accountID)
	if err != nil {
		t.Fatalf("AccountForUser: %v", err)
	}
	return account.Balance
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	newTestUser(t, s, "dup@example.com")

	err := s.CreateUser(&models.User{FullName: "Other", Email: "Dup@Example.com", PasswordHash: "y"})
	if !IsValidation(err) {
		t.Errorf("err = %v, want validation error for duplicate email", err)
	}
}

func TestAccountOwnership(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")
	account := newTestAccount(t, s, alice.ID, "Checking", 100)

	if _, err := s.AccountForUser(alice.ID, account.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := s.AccountForUser(bob.ID, account.ID); !errors.Is(err, ErrNotOwned) {
		t.Errorf("err = %v, want ErrNotOwned", err)
	}
	if _, err := s.AccountForUser(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// Cross-user mutation attempts fail without touching the row.
	if err := s.DeleteAccount(bob.ID, account.ID); !errors.Is(err, ErrNotOwned) {
		t.Errorf("delete err = %v, want ErrNotOwned", err)
	}
	if _, err := s.AccountForUser(alice.ID, account.ID); err != nil {
		t.Errorf("account vanished after denied delete: %v", err)
	}
}

func TestTransactionDebitsAndRestoresBalance(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	account := newTestAccount(t, s, user.ID, "Checking", 500)

	tx := &models.Transaction{Amount: 100, Description: "groceries", Date: "2025-06-10", AccountID: &account.ID}
	if err := s.CreateTransaction(user.ID, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if got := accountBalance(t, s, user.ID, account.ID); got != 400 {
		t.Errorf("balance after insert = %v, want 400", got)
	}

	if err := s.DeleteTransaction(user.ID, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if got := accountBalance(t, s, user.ID, account.ID); got != 500 {
		t.Errorf("balance after delete = %v, want 500", got)
	}
}

func TestUpdateTransactionReconcilesSameAccount(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	account := newTestAccount(t, s, user.ID, "Checking", 500)

	tx := &models.Transaction{Amount: 100, Date: "2025-06-10", AccountID: &account.ID}
	if err := s.CreateTransaction(user.ID, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	// Amount A -> B on the same account adjusts the balance by A-B.
	updated := &models.Transaction{ID: tx.ID, Amount: 60, Date: "2025-06-10", AccountID: &account.ID}
	if err := s.UpdateTransaction(user.ID, updated); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got := accountBalance(t, s, user.ID, account.ID); got != 440 {
		t.Errorf("balance = %v, want 440", got)
	}
}

func TestUpdateTransactionMovesBetweenAccounts(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	first := newTestAccount(t, s, user.ID, "Checking", 500)
	second := newTestAccount(t, s, user.ID, "Savings", 300)

	tx := &models.Transaction{Amount: 100, Date: "2025-06-10", AccountID: &first.ID}
	if err := s.CreateTransaction(user.ID, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if got := accountBalance(t, s, user.ID, first.ID); got != 400 {
		t.Fatalf("first balance = %v, want 400", got)
	}

	updated := &models.Transaction{ID: tx.ID, Amount: 80, Date: "2025-06-10", AccountID: &second.ID}
	if err := s.UpdateTransaction(user.ID, updated); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	if got := accountBalance(t, s, user.ID, first.ID); got != 500 {
		t.Errorf("old account balance = %v, want 500 (amount reversed)", got)
	}
	if got := accountBalance(t, s, user.ID, second.ID); got != 220 {
		t.Errorf("new account balance = %v, want 220", got)
	}
}

func TestCreateTransactionRejectsForeignLinks(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")
	bobsAccount := newTestAccount(t, s, bob.ID, "Bob's", 100)

	tx := &models.Transaction{Amount: 10, Date: "2025-06-10", AccountID: &bobsAccount.ID}
	if err := s.CreateTransaction(alice.ID, tx); !errors.Is(err, ErrNotOwned) {
		t.Errorf("err = %v, want ErrNotOwned", err)
	}
	if got := accountBalance(t, s, bob.ID, bobsAccount.ID); got != 100 {
		t.Errorf("bob's balance changed to %v", got)
	}
}

func TestMonthlyBudgetUniquePerUser(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")

	first := &models.Goal{Name: "Budget v1", TargetAmount: 1000, IsMonthlyBudget: true}
	if err := s.CreateGoal(user.ID, first); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	second := &models.Goal{Name: "Budget v2", TargetAmount: 1500, IsMonthlyBudget: true}
	if err := s.CreateGoal(user.ID, second); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	budget, err := s.MonthlyBudget(user.ID)
	if err != nil {
		t.Fatalf("MonthlyBudget: %v", err)
	}
	if budget.ID != second.ID {
		t.Errorf("budget goal = %d, want the newer goal %d", budget.ID, second.ID)
	}

	goals, err := s.GoalsForUser(user.ID)
	if err != nil {
		t.Fatalf("GoalsForUser: %v", err)
	}
	flagged := 0
	for _, g := range goals {
		if g.IsMonthlyBudget {
			flagged++
		}
	}
	if flagged != 1 {
		t.Errorf("flagged goals = %d, want exactly 1", flagged)
	}
}

func TestAddGoalProgressCapsAtTarget(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	goal := &models.Goal{Name: "Vacation", TargetAmount: 100, CurrentAmount: 90}
	if err := s.CreateGoal(user.ID, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	if err := s.AddGoalProgress(user.ID, goal.ID, 50); err != nil {
		t.Fatalf("AddGoalProgress: %v", err)
	}
	got, err := s.GoalForUser(user.ID, goal.ID)
	if err != nil {
		t.Fatalf("GoalForUser: %v", err)
	}
	if got.CurrentAmount != 100 {
		t.Errorf("current = %v, want capped at 100", got.CurrentAmount)
	}

	if err := s.AddGoalProgress(user.ID, goal.ID, -5); !IsValidation(err) {
		t.Errorf("negative progress err = %v, want validation error", err)
	}
}

func TestCategoryNameUniquePerUserOnly(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	if err := s.CreateCategory(alice.ID, &models.Category{Name: "Food"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := s.CreateCategory(alice.ID, &models.Category{Name: "food"}); !IsValidation(err) {
		t.Errorf("duplicate (case-insensitive) err = %v, want validation error", err)
	}
	if err := s.CreateCategory(bob.ID, &models.Category{Name: "Food"}); err != nil {
		t.Errorf("other user's same name rejected: %v", err)
	}
}

func TestDeleteCategoryDetachesTransactions(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	category := &models.Category{Name: "Food"}
	if err := s.CreateCategory(user.ID, category); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	tx := &models.Transaction{Amount: 10, Date: "2025-06-10", CategoryID: &category.ID}
	if err := s.CreateTransaction(user.ID, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if err := s.DeleteCategory(user.ID, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	got, err := s.TransactionForUser(user.ID, tx.ID)
	if err != nil {
		t.Fatalf("TransactionForUser: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("transaction still categorized after delete")
	}
}

func TestDashboardAggregates(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	newTestAccount(t, s, user.ID, "Checking", 400)
	newTestAccount(t, s, user.ID, "Savings", 600)

	food := &models.Category{Name: "Food"}
	if err := s.CreateCategory(user.ID, food); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	for _, tx := range []*models.Transaction{
		{Amount: 50, Date: "2025-06-05", CategoryID: &food.ID},
		{Amount: 30, Date: "2025-06-20", CategoryID: &food.ID},
		{Amount: 20, Date: "2025-06-21"},
		{Amount: 99, Date: "2025-07-01"}, // outside window
	} {
		if err := s.CreateTransaction(user.ID, tx); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	balance, err := s.TotalBalance(user.ID)
	if err != nil || balance != 1000 {
		t.Errorf("TotalBalance = %v, %v; want 1000", balance, err)
	}

	spent, count, err := s.SpendInWindow(user.ID, "2025-06-01", "2025-06-30")
	if err != nil || spent != 100 || count != 3 {
		t.Errorf("SpendInWindow = (%v, %d, %v); want (100, 3)", spent, count, err)
	}

	totals, err := s.CategoryTotals(user.ID, "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	byName := map[string]CategoryTotal{}
	for _, ct := range totals {
		byName[ct.Name] = ct
	}
	if ct := byName["Food"]; ct.Total != 80 || ct.Count != 2 {
		t.Errorf("Food total = %+v, want 80/2", ct)
	}
	if ct := byName["Uncategorized"]; ct.Total != 20 || ct.Count != 1 {
		t.Errorf("Uncategorized total = %+v, want 20/1", ct)
	}

	top, err := s.TopTransactions(user.ID, "2025-06-01", "2025-06-30", 2)
	if err != nil || len(top) != 2 {
		t.Fatalf("TopTransactions = %v, %v", top, err)
	}
	if top[0].Amount != 50 || top[1].Amount != 30 {
		t.Errorf("top amounts = %v, %v; want 50, 30", top[0].Amount, top[1].Amount)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	food := &models.Category{Name: "Food"}
	if err := s.CreateCategory(user.ID, food); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	for _, tx := range []*models.Transaction{
		{Amount: 12.50, Date: "2025-06-01", Description: "Coffee beans", CategoryID: &food.ID},
		{Amount: 80, Date: "2025-06-15", Description: "Groceries", CategoryID: &food.ID},
		{Amount: 200, Date: "2025-06-20", Description: "Concert tickets"},
	} {
		if err := s.CreateTransaction(user.ID, tx); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	rows, err := s.ListTransactions(user.ID, TxFilter{CategoryID: food.ID})
	if err != nil || len(rows) != 2 {
		t.Errorf("category filter rows = %d, %v; want 2", len(rows), err)
	}

	min := 50.0
	rows, err = s.ListTransactions(user.ID, TxFilter{MinAmount: &min})
	if err != nil || len(rows) != 2 {
		t.Errorf("min filter rows = %d, %v; want 2", len(rows), err)
	}

	rows, err = s.ListTransactions(user.ID, TxFilter{Description: "coffee"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("description filter rows = %d, %v; want 1", len(rows), err)
	}
	if rows[0].CategoryName != "Food" {
		t.Errorf("category name = %q, want Food", rows[0].CategoryName)
	}

	rows, err = s.ListTransactions(user.ID, TxFilter{Sort: "amount_desc"})
	if err != nil || len(rows) != 3 {
		t.Fatalf("sort rows = %d, %v; want 3", len(rows), err)
	}
	if rows[0].Amount != 200 {
		t.Errorf("first by amount = %v, want 200", rows[0].Amount)
	}

	// Another user sees nothing.
	other := newTestUser(t, s, "other@example.com")
	rows, err = s.ListTransactions(other.ID, TxFilter{})
	if err != nil || len(rows) != 0 {
		t.Errorf("other user's rows = %d, %v; want 0", len(rows), err)
	}
}

func TestDeleteAccountDetachesTransactions(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s, "u@example.com")
	account := newTestAccount(t, s, user.ID, "Checking", 500)

	tx := &models.Transaction{Amount: 100, Date: "2025-06-10", AccountID: &account.ID}
	if err := s.CreateTransaction(user.ID, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if err := s.DeleteAccount(user.ID, account.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	got, err := s.TransactionForUser(user.ID, tx.ID)
	if err != nil {
		t.Fatalf("TransactionForUser: %v", err)
	}
	if got.AccountID != nil {
		t.Errorf("transaction still linked to deleted account")
	}
	if _, err := s.AccountForUser(user.ID, account.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted account lookup err = %v, want ErrNotFound", err)
	}
}
