package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/controller"
	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
	"github.com/smarteval/smarteval-go/internal/session"
	"github.com/smarteval/smarteval-go/pkg/config"
	"github.com/smarteval/smarteval-go/pkg/dateutil"
	"github.com/smarteval/smarteval-go/pkg/export"
	"github.com/smarteval/smarteval-go/pkg/logger"
	"github.com/smarteval/smarteval-go/pkg/metrics"
)

const usage = `smarteval <command> [flags]

Commands:
  login, logout, whoami, register, verify-otp, resend-otp
  assessments, assessment, submit, results, export-results
  tasks, task-add, task-complete, task-delete, task-stats
  conversations, messages, send, search
  roadmap, alumni
`

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *session.Store
	client *api.Client

	auth        *controller.AuthController
	assessments *controller.AssessmentController
	tasks       *controller.TaskController
	chat        *controller.ChatController
	alumni      *controller.AlumniController
	ai          *controller.AIController

	assessmentRepo *repository.AssessmentRepository
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := newApp(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("startup failed", "error", err)
	}
	defer a.auth.Close()

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logr *zap.Logger) (*app, error) {
	backend, err := sessionBackend(cfg, logr)
	if err != nil {
		return nil, err
	}
	store := session.Open(context.Background(), backend, logr)

	recorder := metrics.NewRecorder()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logr.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	a := &app{cfg: cfg, logger: logr, store: store}

	a.client = api.NewClient(api.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Tokens:     store.Token,
		Logger:     logr,
		Metrics:    recorder,
		OnUnauthorized: func() {
			if a.auth != nil {
				a.auth.ForceLogout(context.Background())
			}
		},
	})

	validate := validator.New()
	authRepo := repository.NewAuthRepository(a.client, validate)
	a.assessmentRepo = repository.NewAssessmentRepository(a.client, validate)
	taskRepo := repository.NewTaskRepository(a.client, validate)
	chatRepo := repository.NewChatRepository(a.client, validate)
	aiRepo := repository.NewAIRepository(a.client, validate)
	alumniRepo := repository.NewAlumniRepository(a.client)

	a.auth = controller.NewAuthController(authRepo, store, logr)
	a.assessments = controller.NewAssessmentController(a.assessmentRepo, logr)
	a.tasks = controller.NewTaskController(taskRepo, logr)
	a.chat = controller.NewChatController(chatRepo, logr)
	a.alumni = controller.NewAlumniController(alumniRepo, logr)
	a.ai = controller.NewAIController(aiRepo, logr)

	return a, nil
}

func sessionBackend(cfg *config.Config, logr *zap.Logger) (session.Backend, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := session.NewRedis(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return session.NewRedisBackend(client, logr), nil
	default:
		path := cfg.Session.File
		if !filepath.IsAbs(path) {
			home, err := os.UserHomeDir()
			if err == nil {
				path = filepath.Join(home, path)
			}
		}
		return session.NewFileBackend(path, cfg.Session.Secret, logr)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.auth.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "register":
		return a.cmdRegister(ctx, args)
	case "verify-otp":
		return a.cmdVerifyOtp(ctx, args)
	case "resend-otp":
		return a.cmdResendOtp(ctx, args)
	case "assessments":
		return a.cmdAssessments(ctx)
	case "assessment":
		return a.cmdAssessment(ctx, args)
	case "submit":
		return a.cmdSubmit(ctx, args)
	case "results":
		return a.cmdResults(ctx, args)
	case "export-results":
		return a.cmdExportResults(ctx, args)
	case "tasks":
		return a.cmdTasks(ctx, args)
	case "task-add":
		return a.cmdTaskAdd(ctx, args)
	case "task-complete":
		return a.cmdTaskComplete(ctx, args)
	case "task-delete":
		return a.cmdTaskDelete(ctx, args)
	case "task-stats":
		return a.cmdTaskStats(ctx)
	case "conversations":
		return a.cmdConversations(ctx)
	case "messages":
		return a.cmdMessages(ctx, args)
	case "send":
		return a.cmdSend(ctx, args)
	case "search":
		return a.cmdSearch(ctx, args)
	case "roadmap":
		return a.cmdRoadmap(ctx, args)
	case "alumni":
		return a.cmdAlumni(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// currentUser fails the command when nobody is logged in.
func (a *app) currentUser() (*models.User, error) {
	state := a.auth.State()
	if !state.IsAuthenticated {
		return nil, fmt.Errorf("not logged in, run: smarteval login")
	}
	return state.User, nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args) //nolint:errcheck

	a.auth.Login(ctx, *email, *password)
	state := a.auth.State()
	if state.Error != "" && !state.IsAuthenticated {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Printf("logged in as %s (%s)\n", state.User.Username, state.User.Role)
	if state.Error != "" {
		fmt.Fprintln(os.Stderr, "warning:", state.Error)
	}
	if !state.TokenExpiry.IsZero() {
		fmt.Printf("session valid until %s\n", state.TokenExpiry.Format(time.RFC1123))
	}
	return nil
}

func (a *app) cmdWhoami() error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	state := a.auth.State()
	fmt.Printf("%s <%s> role=%s verified=%t\n", user.Username, user.Email, user.Role, user.IsVerified)
	if !state.TokenExpiry.IsZero() {
		fmt.Printf("session valid until %s\n", state.TokenExpiry.Format(time.RFC1123))
	}
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "STUDENT", "STUDENT, PROFESSOR or ALUMNI")
	professorEmail := fs.String("professor-email", "", "approving professor (alumni only)")
	fs.Parse(args) //nolint:errcheck

	a.auth.Register(ctx, *username, *email, *password, *role, *professorEmail)
	state := a.auth.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("registered, check your email for the OTP and run: smarteval verify-otp")
	return nil
}

func (a *app) cmdVerifyOtp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify-otp", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	otp := fs.String("otp", "", "code from the verification email")
	fs.Parse(args) //nolint:errcheck

	a.auth.VerifyOtp(ctx, *email, *otp)
	if state := a.auth.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("verified, you can log in now")
	return nil
}

func (a *app) cmdResendOtp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resend-otp", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args) //nolint:errcheck

	a.auth.ResendOtp(ctx, *email)
	if state := a.auth.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("OTP resent")
	return nil
}

func (a *app) cmdAssessments(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if user.Role == models.RoleProfessor {
		a.assessments.LoadForProfessor(ctx, user.ID)
	} else {
		a.assessments.LoadForStudent(ctx, user.ID)
	}
	state := a.assessments.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, item := range state.Assessments {
		fmt.Printf("%s  %-30s %-10s %s -> %s\n",
			item.ID, item.Title, item.Status,
			dateutil.FormatDateTime(item.StartTime), dateutil.FormatDateTime(item.EndTime))
	}
	return nil
}

func (a *app) cmdAssessment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assessment", flag.ExitOnError)
	id := fs.String("id", "", "assessment id")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	studentID := ""
	if user.Role == models.RoleStudent {
		studentID = user.ID
	}
	a.assessments.Select(ctx, *id, studentID)
	state := a.assessments.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	sel := state.Selected
	fmt.Printf("%s\n%s\nwindow: %s -> %s\n", sel.Title, sel.Description,
		dateutil.FormatDateTime(sel.StartTime), dateutil.FormatDateTime(sel.EndTime))
	if state.AlreadySubmitted {
		fmt.Println("already submitted")
	}
	for i, q := range sel.Questions {
		fmt.Printf("%d. %s\n", i+1, q.QuestionText)
		for j, opt := range q.Options {
			fmt.Printf("   %d) %s\n", j, opt)
		}
	}
	return nil
}

func (a *app) cmdSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	id := fs.String("id", "", "assessment id")
	answers := fs.String("answers", "", "comma-separated option indices, e.g. 0,2,1")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}

	parsed, err := parseAnswers(*answers)
	if err != nil {
		return err
	}

	a.assessments.Select(ctx, *id, user.ID)
	a.assessments.Submit(ctx, *id, models.SubmitAssessmentRequest{StudentID: user.ID, Answers: parsed})
	state := a.assessments.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("submitted")
	return nil
}

func parseAnswers(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no answers given")
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("answer %q is not a number", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func (a *app) cmdResults(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	id := fs.String("id", "", "assessment id (professor view)")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if *id != "" {
		a.assessments.LoadResults(ctx, *id)
	} else {
		a.assessments.LoadStudentResults(ctx, user.ID)
	}
	state := a.assessments.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, r := range state.Results {
		fmt.Printf("%s  student=%s score=%d completed=%s\n",
			r.AssessmentID, r.StudentID, r.Score, dateutil.FormatDateTime(r.CompletedAt))
	}
	return nil
}

func (a *app) cmdExportResults(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export-results", flag.ExitOnError)
	id := fs.String("id", "", "assessment id")
	format := fs.String("format", "pdf", "pdf or csv")
	fs.Parse(args) //nolint:errcheck

	if _, err := a.currentUser(); err != nil {
		return err
	}

	var assessment *models.Assessment
	for res := range a.assessmentRepo.Get(ctx, *id) {
		if res.IsError() {
			return fmt.Errorf("%s", res.Message())
		}
		if res.IsSuccess() {
			assessment = res.Value()
		}
	}

	var results []models.AssessmentResult
	for res := range a.assessmentRepo.Results(ctx, *id) {
		if res.IsError() {
			return fmt.Errorf("%s", res.Message())
		}
		if res.IsSuccess() {
			results = res.Value()
		}
	}

	report := export.ResultsReport(*assessment, results)

	var rendered []byte
	var err error
	switch *format {
	case "csv":
		rendered, err = export.NewCSVExporter().Render(report)
	default:
		rendered, err = export.NewPDFExporter().Render(report)
	}
	if err != nil {
		return err
	}

	saver, err := export.NewSaver(a.cfg.Export.Dir)
	if err != nil {
		return err
	}
	path, err := saver.Save(fmt.Sprintf("results-%s.%s", *id, *format), rendered)
	if err != nil {
		return err
	}
	fmt.Println("written", path)
	return nil
}

func (a *app) cmdTasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	status := fs.String("status", "", "PENDING, ONGOING or COMPLETED")
	overdue := fs.Bool("overdue", false, "only overdue tasks")
	dueSoon := fs.Bool("due-soon", false, "only tasks due soon")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	switch {
	case *overdue:
		a.tasks.LoadOverdue(ctx, user.ID)
	case *dueSoon:
		a.tasks.LoadDueSoon(ctx, user.ID)
	case *status != "":
		a.tasks.LoadByStatus(ctx, user.ID, models.TaskStatus(*status))
	default:
		a.tasks.Load(ctx, user.ID)
	}
	state := a.tasks.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, t := range state.Tasks {
		marker := " "
		if t.IsOverdue {
			marker = "!"
		}
		fmt.Printf("%s %s  %-30s %-9s %-6s %s\n",
			marker, t.ID, t.Title, t.Status, t.Priority, dateutil.TimeRemaining(t.EndDateTime))
	}
	return nil
}

func (a *app) cmdTaskAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-add", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	start := fs.String("start", dateutil.CurrentDateTime(), "start, e.g. 2026-09-01T09:00:00")
	end := fs.String("end", "", "deadline, e.g. 2026-09-01T17:00:00")
	priority := fs.String("priority", "MEDIUM", "LOW, MEDIUM or HIGH")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.tasks.Create(ctx, user.ID, models.CreateTaskRequest{
		Title:         *title,
		Description:   *desc,
		StartDateTime: *start,
		EndDateTime:   *end,
		Priority:      *priority,
	})
	if state := a.tasks.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("task added")
	return nil
}

func (a *app) cmdTaskComplete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-complete", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.tasks.Complete(ctx, *id, user.ID)
	if state := a.tasks.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("task completed")
	return nil
}

func (a *app) cmdTaskDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-delete", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.tasks.Delete(ctx, *id, user.ID)
	if state := a.tasks.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("task deleted")
	return nil
}

func (a *app) cmdTaskStats(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.tasks.LoadStats(ctx, user.ID)
	state := a.tasks.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	s := state.Stats
	fmt.Printf("pending=%d ongoing=%d completed=%d overdue=%d\n", s.Pending, s.Ongoing, s.Completed, s.Overdue)
	return nil
}

func (a *app) cmdConversations(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.chat.LoadConversations(ctx, user.ID)
	state := a.chat.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, conv := range state.Conversations {
		unread := ""
		if conv.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", conv.UnreadCount)
		}
		fmt.Printf("%s  %s%s: %s\n", conv.ID, conv.Username, unread, conv.LastMessage)
	}
	return nil
}

func (a *app) cmdMessages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ExitOnError)
	peer := fs.String("peer", "", "peer user id")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.chat.OpenThread(ctx, user.ID, *peer)
	state := a.chat.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, m := range state.Messages {
		who := "them"
		if m.SenderID == user.ID {
			who = "me"
		}
		fmt.Printf("[%s] %s: %s\n", dateutil.FormatTime(m.Timestamp), who, m.Message)
	}
	return nil
}

func (a *app) cmdSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	peer := fs.String("peer", "", "peer user id")
	text := fs.String("text", "", "message text")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	a.chat.Send(ctx, user.ID, *peer, *text)
	if state := a.chat.State(); state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Println("sent")
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "name or email fragment")
	fs.Parse(args) //nolint:errcheck

	if _, err := a.currentUser(); err != nil {
		return err
	}
	a.chat.Search(ctx, *query)
	state := a.chat.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, u := range state.SearchResults {
		fmt.Printf("%s  %s <%s> %s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

func (a *app) cmdRoadmap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("roadmap", flag.ExitOnError)
	domain := fs.String("domain", "", "learning domain")
	timeframe := fs.String("timeframe", "3 months", "learning timeframe")
	difficulty := fs.String("difficulty", "beginner", "difficulty level")
	fs.Parse(args) //nolint:errcheck

	if _, err := a.currentUser(); err != nil {
		return err
	}
	a.ai.GenerateRoadmap(ctx, *domain, *timeframe, *difficulty)
	state := a.ai.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for i, step := range state.Roadmap {
		fmt.Printf("%d. %s\n", i+1, step)
	}
	return nil
}

func (a *app) cmdAlumni(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumni", flag.ExitOnError)
	approve := fs.String("approve", "", "request id to approve")
	reject := fs.String("reject", "", "request id to reject")
	fs.Parse(args) //nolint:errcheck

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	switch {
	case *approve != "":
		a.alumni.Approve(ctx, *approve, user.ID)
	case *reject != "":
		a.alumni.Reject(ctx, *reject, user.ID)
	default:
		a.alumni.LoadPending(ctx, user.ID)
	}
	state := a.alumni.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	for _, req := range state.Pending {
		fmt.Printf("%s  %s <%s> since %s\n",
			req.ID, req.AlumniUsername, req.AlumniEmail, dateutil.FormatDate(req.CreatedAt))
	}
	return nil
}
