package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/account"
	"github.com/teller-dev/teller/internal/auth"
	"github.com/teller-dev/teller/internal/bank"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/statement"
	"github.com/teller-dev/teller/internal/validate"
)

type openAccountReq struct {
	FullName         string `json:"full_name"`
	DateOfBirth      string `json:"date_of_birth"` // dd/mm/yyyy
	Type             string `json:"type"`
	GuardianName     string `json:"guardian_name,omitempty"`
	GuardianRelation string `json:"guardian_relation,omitempty"`
	Password         string `json:"password"`
	PIN              string `json:"pin"`
}

type loginReq struct {
	Password string `json:"password"`
	PIN      string `json:"pin"`
}

type chargeReq struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Purpose     string          `json:"purpose,omitempty"`
}

type guardianResp struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

type snapshotResp struct {
	AccountNumber  int64           `json:"account_number"`
	FirstName      string          `json:"first_name"`
	DateOfBirth    string          `json:"date_of_birth"`
	Age            int             `json:"age"`
	Guardian       *guardianResp   `json:"guardian,omitempty"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
}

type balanceResp struct {
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
}

type entryResp struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
}

func (s *Server) snapshotResp(snap model.Snapshot) snapshotResp {
	resp := snapshotResp{
		AccountNumber:  snap.AccountNumber,
		FirstName:      snap.FirstName,
		DateOfBirth:    snap.DateOfBirth.Format(validate.DOBLayout),
		Age:            snap.Age,
		Type:           string(snap.Type),
		Balance:        snap.Balance,
		BalanceDisplay: s.display(snap.Balance),
	}
	if snap.Guardian != nil {
		resp.Guardian = &guardianResp{Name: snap.Guardian.Name, Relation: snap.Guardian.Relation}
	}
	return resp
}

// display renders an amount with the configured currency symbol, rounded
// to 2 decimal places.
func (s *Server) display(amount decimal.Decimal) string {
	return s.cfg.Bank.CurrencySymbol + amount.StringFixed(2)
}

// acct resolves the {number} URL param to a registered account, writing
// the error response on failure.
func (s *Server) acct(w http.ResponseWriter, r *http.Request) (*account.Account, bool) {
	num, err := id.Parse(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, errBadRequest{"number": "invalid format"})
		return nil, false
	}
	a, ok := s.reg.Find(num)
	if !ok {
		writeNotFound(w)
		return nil, false
	}
	return a, true
}

func (s *Server) openAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Err(err).Str("method", "openAccount").Msg("error unmarshalling JSON")
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}

	// Credentials are validated up front so the registry never holds an
	// account it cannot finish.
	dob, ok := validate.DateOfBirth(req.DateOfBirth)
	if !ok {
		writeError(w, bank.ErrInvalidDOB)
		return
	}
	if !validate.Password(req.Password) {
		writeError(w, account.ErrInvalidPassword)
		return
	}
	if !validate.PIN(req.PIN, dob) {
		writeError(w, account.ErrInvalidPIN)
		return
	}

	var guardian *model.Guardian
	if req.GuardianName != "" || req.GuardianRelation != "" {
		guardian = &model.Guardian{Name: req.GuardianName, Relation: req.GuardianRelation}
	}
	acct, err := s.reg.Open(bank.OpenParams{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Type:        model.AccountType(req.Type),
		Guardian:    guardian,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := acct.SetPassword(req.Password); err != nil {
		writeError(w, err)
		return
	}
	if err := acct.SetPIN(req.PIN); err != nil {
		writeError(w, err)
		return
	}

	s.log.Info().Int64("account", acct.Number()).Str("type", string(acct.Type())).Msg("account opened")
	writeJSON(w, http.StatusCreated, s.snapshotResp(acct.Snapshot()))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}

	sess, ok := s.sessions[acct.Number()]
	if !ok {
		sess = auth.NewSession(acct)
		s.sessions[acct.Number()] = sess
	}

	res := sess.Attempt(req.Password, req.PIN)
	switch res.State {
	case auth.Authenticated:
		delete(s.sessions, acct.Number())
		tok := s.issueToken(acct.Number())
		writeJSON(w, http.StatusOK, map[string]string{"status": "authenticated", "token": tok})
	case auth.Locked:
		// The lock ends this login flow only; the next login starts a
		// fresh session.
		delete(s.sessions, acct.Number())
		s.log.Warn().Int64("account", acct.Number()).Msg("login locked after 3 failed attempts")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "locked"})
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "rejected", "attempts_left": res.AttemptsLeft})
	}
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req chargeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}
	var err error
	if req.Description == "" {
		err = acct.Deposit(req.Amount)
	} else {
		err = acct.DepositWithNote(req.Amount, req.Description)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	bal := acct.Snapshot().Balance
	writeJSON(w, http.StatusOK, balanceResp{Balance: bal, BalanceDisplay: s.display(bal)})
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req chargeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}
	var err error
	if req.Purpose == "" {
		err = acct.Withdraw(req.Amount)
	} else {
		err = acct.WithdrawForPurpose(req.Amount, req.Purpose)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	bal := acct.Snapshot().Balance
	writeJSON(w, http.StatusOK, balanceResp{Balance: bal, BalanceDisplay: s.display(bal)})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	bal, err := acct.Balance()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResp{Balance: bal, BalanceDisplay: s.display(bal)})
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	n := s.cfg.Statement.Transactions
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			writeError(w, errBadRequest{"n": "must be a positive integer"})
			return
		}
		n = parsed
	}

	entries, err := acct.LastTransactions(n)
	if errors.Is(err, account.ErrNoTransactions) {
		writeJSON(w, http.StatusOK, map[string]any{"transactions": []entryResp{}, "note": "no transactions yet"})
		return
	} else if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := statement.WriteCSV(w, entries); err != nil {
			s.log.Err(err).Str("method", "transactions").Msg("error writing CSV")
		}
		return
	}

	out := make([]entryResp, len(entries))
	for i, e := range entries {
		out[i] = entryResp{ID: e.ID.String(), Timestamp: e.Time.Format(ledger.TimeLayout), Event: e.Text}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

func (s *Server) interest(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req struct {
		Years int `json:"years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}
	interest, err := acct.ApplyInterest(req.Years)
	if err != nil {
		writeError(w, err)
		return
	}
	bal := acct.Snapshot().Balance
	writeJSON(w, http.StatusOK, map[string]any{
		"interest":        interest,
		"balance":         bal,
		"balance_display": s.display(bal),
	})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}
	if err := acct.ChangePassword(req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (s *Server) changePIN(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest{"request body": "malformed JSON"})
		return
	}
	if err := acct.ChangePIN(req.PIN); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pin updated"})
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotResp(acct.Snapshot()))
}

func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.acct(w, r)
	if !ok {
		return
	}
	st := statement.Statement{
		BankName:       s.cfg.Bank.Name,
		CurrencySymbol: s.cfg.Bank.CurrencySymbol,
		Snapshot:       acct.Snapshot(),
		Entries:        acct.Ledger().LastN(s.cfg.Statement.Transactions),
	}
	w.Header().Set("Content-Type", "application/pdf")
	if err := st.WritePDF(w); err != nil {
		s.log.Err(err).Str("method", "statement").Msg("error rendering PDF")
	}
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"total_created": s.reg.TotalCreated(),
		"live":          s.reg.Size(),
	})
}
