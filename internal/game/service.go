package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service runs the year-advancement state machine over sessions in the store.
// Every operation on a session id is serialized by a per-id mutex; distinct
// sessions proceed in parallel.
type Service struct {
	store     SessionStore
	ledger    Ledger
	scenarios ScenarioSource
	expenses  ExpensePolicy
	log       *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store SessionStore, ledger Ledger, scenarios ScenarioSource, expenses ExpensePolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if expenses == nil {
		expenses = ProgressiveExpenses{}
	}
	return &Service{
		store:     store,
		ledger:    ledger,
		scenarios: scenarios,
		expenses:  expenses,
		log:       logger,
		now:       time.Now,
		locks:     map[string]*sync.Mutex{},
	}
}

type StartResult struct {
	GameID      string
	Message     string
	PlayerState PlayerState
}

type AdvanceResult struct {
	GameOver     bool
	Message      string
	PlayerState  PlayerState
	NextEvent    *Event
	FinalSummary *Summary
}

type DecisionResult struct {
	Message     string
	PlayerState PlayerState
}

func (s *Service) lockSession(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// dropLock forgets a terminal session's lock entry. Waiters already holding
// the mutex pointer still serialize against each other and then observe
// ErrSessionNotFound from the store.
func (s *Service) dropLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// StartGame creates the ledger customer and account and registers a fresh
// session at age 16 with the fixed starting balance.
func (s *Service) StartGame(ctx context.Context, firstName, lastName string) (StartResult, error) {
	if firstName == "" || lastName == "" {
		return StartResult{}, ErrNameRequired
	}

	customerID, err := s.ledger.CreateCustomer(ctx, firstName, lastName)
	if err != nil {
		return StartResult{}, fmt.Errorf("create customer: %w", err)
	}
	accountID, err := s.ledger.CreateAccount(ctx, customerID, StartBalance)
	if err != nil {
		return StartResult{}, fmt.Errorf("create account: %w", err)
	}

	now := s.now()
	session := &Session{
		ID:          uuid.NewString(),
		Name:        firstName + " " + lastName,
		CustomerID:  customerID,
		AccountID:   accountID,
		Age:         StartAge,
		CurrentDate: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		Balance:     float64(StartBalance),
		Income:      0,
		JobTitle:    DefaultJobTitle,
	}
	if err := s.store.Put(ctx, session); err != nil {
		return StartResult{}, fmt.Errorf("store session: %w", err)
	}

	s.log.Info("game started", "game_id", session.ID, "customer_id", customerID)
	return StartResult{
		GameID:      session.ID,
		Message:     fmt.Sprintf("Welcome, %s! Your financial life begins.", firstName),
		PlayerState: session.State(),
	}, nil
}

// GetState returns a read-only snapshot of the session.
func (s *Service) GetState(ctx context.Context, gameID string) (PlayerState, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return PlayerState{}, err
	}
	return session.State(), nil
}

// AdvanceYear plays out one simulated year. The very first call on a session
// does not age the player; it only marks the session started and plays out
// age 16. Ledger failures abort the step before any new state becomes
// visible; scenario failures degrade the returned event instead.
func (s *Service) AdvanceYear(ctx context.Context, gameID string) (AdvanceResult, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return AdvanceResult{}, err
	}

	if session.Started {
		session.Age++
		session.CurrentDate = session.CurrentDate.Add(YearLength)
	} else {
		session.Started = true
	}

	if err := s.applyAnnualFlows(ctx, session); err != nil {
		return AdvanceResult{}, err
	}
	return s.finishYear(ctx, session)
}

// FastForward batches year advancement up to targetAge. Age and date advance
// per elapsed year but the income deposit and expense withdrawal are applied
// once, with the landed age's numbers, matching the original engine.
func (s *Service) FastForward(ctx context.Context, gameID string, targetAge int) (AdvanceResult, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return AdvanceResult{}, err
	}

	if targetAge <= session.Age || targetAge > RetirementAge {
		return AdvanceResult{}, fmt.Errorf("%w: must be a number between %d and %d",
			ErrInvalidTargetAge, session.Age+1, RetirementAge)
	}

	for session.Age < targetAge {
		session.Age++
		session.CurrentDate = session.CurrentDate.Add(YearLength)
	}
	session.Started = true

	if err := s.applyAnnualFlows(ctx, session); err != nil {
		return AdvanceResult{}, err
	}
	return s.finishYear(ctx, session)
}

// applyAnnualFlows posts the salary deposit and living-expense withdrawal for
// the session's current age and refreshes the cached ledger view.
func (s *Service) applyAnnualFlows(ctx context.Context, session *Session) error {
	date := session.CurrentDate
	if session.Income > 0 {
		desc := session.JobTitle + " Annual Salary"
		if err := s.ledger.Deposit(ctx, session.AccountID, date, session.Income, desc); err != nil {
			return fmt.Errorf("annual salary deposit: %w", err)
		}
	}
	if amount := s.expenses.AnnualExpense(session.Age); amount > 0 {
		if err := s.ledger.Withdraw(ctx, session.AccountID, date, amount, "Annual Living Expenses"); err != nil {
			return fmt.Errorf("annual expense withdrawal: %w", err)
		}
	}
	return s.refreshLedgerView(ctx, session)
}

func (s *Service) refreshLedgerView(ctx context.Context, session *Session) error {
	balance, err := s.ledger.Balance(ctx, session.AccountID)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	loans, err := s.ledger.Loans(ctx, session.AccountID)
	if err != nil {
		return fmt.Errorf("read loans: %w", err)
	}
	session.Balance = balance
	session.Loans = loans
	return nil
}

// finishYear runs the shared retirement-check / event-selection tail of a
// transition and persists the outcome. Reaching retirement removes the
// session; no operation on its id is valid afterwards.
func (s *Service) finishYear(ctx context.Context, session *Session) (AdvanceResult, error) {
	if session.Age >= RetirementAge {
		history, err := s.ledger.Transactions(ctx, session.AccountID)
		if err != nil {
			return AdvanceResult{}, fmt.Errorf("read transaction history: %w", err)
		}
		summary, err := s.scenarios.FinalSummary(ctx, SummaryContext{
			Name:    session.Name,
			Balance: session.Balance,
			Income:  session.Income,
			Loans:   session.Loans,
			History: history,
		})
		if err != nil {
			s.log.Error("final summary generation failed", "game_id", session.ID, "err", err)
			summary = DegradedSummary(err)
		}

		if err := s.store.Delete(ctx, session.ID); err != nil {
			return AdvanceResult{}, fmt.Errorf("delete session: %w", err)
		}
		s.dropLock(session.ID)

		return AdvanceResult{
			GameOver:     true,
			Message:      "You've reached the retirement age of 67. Your financial journey is complete!",
			PlayerState:  session.State(),
			FinalSummary: &summary,
		}, nil
	}

	kind, specifier := SelectEvent(session.Age)
	sc := ScenarioContext{
		Name:       session.Name,
		Age:        session.Age,
		Date:       session.CurrentDate.Format("2006-01-02"),
		Balance:    session.Balance,
		Income:     session.Income,
		JobTitle:   session.JobTitle,
		Loans:      session.Loans,
		LifeEvents: session.LifeEvents,
		Specifier:  specifier,
	}

	var event Event
	var err error
	if kind == EventJob {
		event, err = s.scenarios.JobOffer(ctx, sc)
	} else {
		event, err = s.scenarios.MCQ(ctx, sc)
	}
	if err != nil {
		s.log.Error("scenario generation failed", "game_id", session.ID, "age", session.Age, "kind", kind, "err", err)
		event = DegradedEvent(kind, err)
	}

	if err := s.store.Put(ctx, session); err != nil {
		return AdvanceResult{}, fmt.Errorf("store session: %w", err)
	}
	return AdvanceResult{
		Message:     fmt.Sprintf("You are now %d years old.", session.Age),
		PlayerState: session.State(),
		NextEvent:   &event,
	}, nil
}

// SubmitMCQDecision applies a dilemma choice: the impact hits the ledger, the
// cached view refreshes, and the choice is remembered as a life event.
func (s *Service) SubmitMCQDecision(ctx context.Context, gameID string, choice Choice) (DecisionResult, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return DecisionResult{}, err
	}

	impact := choice.Impact
	date := session.CurrentDate
	switch impact.Kind {
	case ImpactDeposit:
		err = s.ledger.Deposit(ctx, session.AccountID, date, impact.Amount, impact.Description)
	case ImpactWithdrawal:
		err = s.ledger.Withdraw(ctx, session.AccountID, date, impact.Amount, impact.Description)
	case ImpactCreateLoan:
		_, err = s.ledger.CreateLoan(ctx, session.AccountID, date, impact.Amount, impact.Description)
	case ImpactIncome:
		return DecisionResult{}, fmt.Errorf("%w: job offer submitted as an mcq decision", ErrInvalidDecision)
	default:
		return DecisionResult{}, fmt.Errorf("%w: choice is missing a financial impact", ErrInvalidDecision)
	}
	if err != nil {
		return DecisionResult{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := s.refreshLedgerView(ctx, session); err != nil {
		return DecisionResult{}, err
	}
	session.LifeEvents = append(session.LifeEvents, impact.Description)

	if err := s.store.Put(ctx, session); err != nil {
		return DecisionResult{}, fmt.Errorf("store session: %w", err)
	}
	return DecisionResult{
		Message:     "Decision processed.",
		PlayerState: session.State(),
	}, nil
}

// SubmitJobDecision applies a job choice. A job offer changes future income,
// not present balance, so the ledger is never called.
func (s *Service) SubmitJobDecision(ctx context.Context, gameID string, choice Choice) (DecisionResult, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return DecisionResult{}, err
	}

	impact := choice.Impact
	if impact.Kind != ImpactIncome {
		return DecisionResult{}, fmt.Errorf("%w: expected a job offer impact", ErrInvalidDecision)
	}

	session.Income = impact.Income
	session.JobTitle = impact.Title
	session.LifeEvents = append(session.LifeEvents, fmt.Sprintf("Became a %s", impact.Title))

	if err := s.store.Put(ctx, session); err != nil {
		return DecisionResult{}, fmt.Errorf("store session: %w", err)
	}
	return DecisionResult{
		Message:     fmt.Sprintf("Congratulations on your new role as a %s!", impact.Title),
		PlayerState: session.State(),
	}, nil
}

// PayLoan sends a payment against the first outstanding loan. An empty loan
// list is a successful no-op.
func (s *Service) PayLoan(ctx context.Context, gameID string, amount int64) (DecisionResult, error) {
	if amount <= 0 {
		return DecisionResult{}, ErrInvalidPayment
	}

	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return DecisionResult{}, err
	}

	if len(session.Loans) == 0 {
		return DecisionResult{
			Message:     "You have no outstanding loans to pay.",
			PlayerState: session.State(),
		}, nil
	}

	target := session.Loans[0]
	if err := s.ledger.PayLoan(ctx, target.ID, session.AccountID, session.CurrentDate, amount); err != nil {
		return DecisionResult{}, fmt.Errorf("pay loan: %w", err)
	}
	if err := s.refreshLedgerView(ctx, session); err != nil {
		return DecisionResult{}, err
	}

	if err := s.store.Put(ctx, session); err != nil {
		return DecisionResult{}, fmt.Errorf("store session: %w", err)
	}
	return DecisionResult{
		Message:     fmt.Sprintf("Payment of $%d applied to %q.", amount, target.Description),
		PlayerState: session.State(),
	}, nil
}

// History is a passthrough read of the session's full transaction history.
func (s *Service) History(ctx context.Context, gameID string) ([]Transaction, error) {
	lock := s.lockSession(gameID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.Transactions(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("read transaction history: %w", err)
	}
	return history, nil
}
