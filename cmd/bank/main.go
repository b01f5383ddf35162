package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.accounts/pkg/app"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

var cliArgs struct {
	dataFile string
}

func init() {
	flag.StringVar(&cliArgs.dataFile, "data", "", "Snapshot file path (overrides config)")

	flag.Parse()
}

func main() {
	appCfg, err := app.LoadConfig()
	if err != nil {
		logger.WithError(err).Error(nil, "Failed to load app config")
		os.Exit(1)
	}
	if cliArgs.dataFile != "" {
		appCfg.Storage.Driver = "file"
		appCfg.Storage.File = cliArgs.dataFile
	}

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level)
		// Keep stdout free for the menu
		setup.SetOutput(os.Stderr)
	})

	injector := app.BootstrapServices(appCfg)

	if err := injector(func(storage dal.Storage, bank *ledger.Ledger) error {
		return runShell(storage, bank)
	}); err != nil {
		logger.WithError(err).Error(nil, "Session failed")
		os.Exit(1)
	}
}

func runShell(storage dal.Storage, bank *ledger.Ledger) error {
	ctx := operationContext()
	if err := storage.Setup(ctx); err != nil {
		return err
	}
	if err := bank.Load(ctx, storage); err != nil {
		return err
	}

	shell := &shell{
		input:   bufio.NewScanner(os.Stdin),
		storage: storage,
		bank:    bank,
	}
	return shell.run()
}

func operationContext() context.Context {
	return diag.ContextWithOperationID(context.Background(), uuid.NewV4().String())
}

// shell is a thin surface around the ledger: it prompts, dispatches and
// renders results. No business rules live here
type shell struct {
	input   *bufio.Scanner
	storage dal.Storage
	bank    *ledger.Ledger
}

func (s *shell) run() error {
	for {
		fmt.Println()
		fmt.Println("--- Banking System Menu ---")
		fmt.Println("1. Create Account")
		fmt.Println("2. Deposit Funds")
		fmt.Println("3. Withdraw Funds")
		fmt.Println("4. Transfer Funds")
		fmt.Println("5. View Account Details")
		fmt.Println("6. List All Accounts")
		fmt.Println("7. Save and Exit")

		choice, ok := s.prompt("Enter your choice (1-7): ")
		if !ok {
			// stdin closed, still save before exiting
			return s.saveAndExit()
		}

		ctx := operationContext()
		switch choice {
		case "1":
			s.createAccount(ctx)
		case "2":
			s.deposit(ctx)
		case "3":
			s.withdraw(ctx)
		case "4":
			s.transfer(ctx)
		case "5":
			s.viewAccount()
		case "6":
			s.listAccounts()
		case "7":
			fmt.Println("Exiting system. Saving data...")
			return s.saveAndExit()
		default:
			fmt.Println("Invalid choice. Please enter a number between 1 and 7.")
		}
	}
}

func (s *shell) saveAndExit() error {
	ctx := operationContext()
	if err := s.bank.Save(ctx, s.storage); err != nil {
		fmt.Println("Failed to save data:", errorText(err))
		return err
	}
	fmt.Println("Data saved. Goodbye!")
	return nil
}

func (s *shell) createAccount(ctx context.Context) {
	fmt.Println("\n--- Create New Account ---")
	owner, ok := s.prompt("Enter account holder's name: ")
	if !ok || owner == "" {
		fmt.Println("Account creation cancelled (name not provided).")
		return
	}
	value, ok := s.prompt("Enter initial balance (e.g. 50.00, press Enter for 0.00): ")
	if !ok {
		fmt.Println("Account creation cancelled.")
		return
	}
	balance := decimal.Zero
	if value != "" {
		var err error
		if balance, err = decimal.NewFromString(value); err != nil {
			fmt.Println("Invalid balance format. Please enter a numeric value.")
			return
		}
	}
	number, err := s.bank.CreateAccount(owner, balance)
	if err != nil {
		fmt.Println("Error creating account:", errorText(err))
		return
	}
	logger.Info(ctx, "Created account %v", number)
	account, _ := s.bank.GetAccount(number)
	fmt.Println("\nAccount created successfully!")
	fmt.Println(" ", account)
}

func (s *shell) deposit(ctx context.Context) {
	fmt.Println("\n--- Deposit Funds ---")
	number, ok := s.promptNumber("Enter account number to deposit into: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Enter amount to deposit: ")
	if !ok {
		fmt.Println("Deposit cancelled.")
		return
	}
	if err := s.bank.Deposit(number, amount); err != nil {
		fmt.Println("Error during deposit:", errorText(err))
		return
	}
	logger.Info(ctx, "Deposited %v to account %v", amount, number)
	account, _ := s.bank.GetAccount(number)
	fmt.Println("\nDeposit successful!")
	fmt.Println(" ", account)
}

func (s *shell) withdraw(ctx context.Context) {
	fmt.Println("\n--- Withdraw Funds ---")
	number, ok := s.promptNumber("Enter account number to withdraw from: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Enter amount to withdraw: ")
	if !ok {
		fmt.Println("Withdrawal cancelled.")
		return
	}
	if err := s.bank.Withdraw(number, amount); err != nil {
		fmt.Println("Error during withdrawal:", errorText(err))
		return
	}
	logger.Info(ctx, "Withdrew %v from account %v", amount, number)
	account, _ := s.bank.GetAccount(number)
	fmt.Println("\nWithdrawal successful!")
	fmt.Println(" ", account)
}

func (s *shell) transfer(ctx context.Context) {
	fmt.Println("\n--- Transfer Funds ---")
	fromNumber, ok := s.promptNumber("Enter account number to transfer from: ")
	if !ok {
		return
	}
	toNumber, ok := s.promptNumber("Enter account number to transfer to: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Enter amount to transfer: ")
	if !ok {
		fmt.Println("Transfer cancelled.")
		return
	}
	if err := s.bank.Transfer(fromNumber, toNumber, amount); err != nil {
		fmt.Println("Error during transfer:", errorText(err))
		return
	}
	logger.Info(ctx, "Transferred %v from account %v to %v", amount, fromNumber, toNumber)
	fmt.Println("\nTransfer successful!")
	from, _ := s.bank.GetAccount(fromNumber)
	to, _ := s.bank.GetAccount(toNumber)
	fmt.Println(" ", from)
	fmt.Println(" ", to)
}

func (s *shell) viewAccount() {
	fmt.Println("\n--- View Account Details ---")
	number, ok := s.promptNumber("Enter account number: ")
	if !ok {
		return
	}
	account, err := s.bank.GetAccount(number)
	if err != nil {
		fmt.Println("Error:", errorText(err))
		return
	}
	fmt.Println(" ", account)
}

func (s *shell) listAccounts() {
	fmt.Println("\n--- All Accounts ---")
	accounts := s.bank.ListAccounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts in the system.")
		return
	}
	for _, account := range accounts {
		fmt.Println(" ", account)
	}
}

func (s *shell) prompt(text string) (string, bool) {
	fmt.Print(text)
	if !s.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.input.Text()), true
}

func (s *shell) promptNumber(text string) (int64, bool) {
	value, ok := s.prompt(text)
	if !ok || value == "" {
		fmt.Println("Cancelled (account number not provided).")
		return 0, false
	}
	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Println("Invalid account number. Please enter a numeric value.")
		return 0, false
	}
	return number, true
}

// promptAmount reads a decimal amount. Empty input cancels the operation
func (s *shell) promptAmount(text string) (decimal.Decimal, bool) {
	value, ok := s.prompt(text)
	if !ok || value == "" {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		fmt.Println("Invalid amount. Please enter a numeric value (e.g. 100.50).")
		return decimal.Decimal{}, false
	}
	return amount, true
}

// errorText maps error kinds to user facing messages
func errorText(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Amount must be positive."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, ledger.ErrInvalidOwnerName):
		return "Account holder name must not be empty."
	case errors.Is(err, ledger.ErrInvalidInitialBalance):
		return "Initial balance cannot be negative."
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, ledger.ErrSameAccountTransfer):
		return "Cannot transfer money to the same account."
	case errors.Is(err, dal.ErrCorruptState):
		return "Saved data is corrupt: " + err.Error()
	case errors.Is(err, dal.ErrStorageIO):
		return "Storage failure: " + err.Error()
	default:
		return err.Error()
	}
}
