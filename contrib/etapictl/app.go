package etapictl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	etapi "github.com/etapi-go/etapi.go"
	"github.com/etapi-go/etapi.go/pkg/logger"
	"github.com/etapi-go/etapi.go/pkg/models"
	"github.com/etapi-go/etapi.go/pkg/search"
)

// App runs commands against one server. Output goes to Out, logs to the
// writer given to NewApp.
type App struct {
	Config *Config
	Out    io.Writer
	// RunID tags every log line of this invocation.
	RunID string
	JSON  bool

	log *logger.LogData
}

// NewApp builds the logger for cfg. Logs are written to logOut.
func NewApp(cfg *Config, out, logOut io.Writer) (*App, error) {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logData, err := logger.New().FromBuffer(logOut).WithLevel(level).Make()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logData.Logger = logData.Logger.With().Str("run", runID).Logger()

	return &App{Config: cfg, Out: out, RunID: runID, log: logData}, nil
}

func (a *App) Close() error {
	return a.log.Close()
}

// Session returns a session for the configured token.
func (a *App) Session() *etapi.Session {
	return etapi.FromToken(a.Config.Token, a.Config.URL, a.options()...)
}

func (a *App) options() []etapi.Option {
	return []etapi.Option{
		etapi.WithLogger(a.log),
		etapi.WithTimeout(a.Config.Timeout),
		etapi.WithSearchVariant(a.Config.Variant()),
	}
}

// Login exchanges password for a token, prints it, and stores it in
// a.Config.
func (a *App) Login(ctx context.Context, password string) error {
	session, err := etapi.Login(ctx, password, a.Config.URL, a.options()...)
	if err != nil {
		return err
	}
	a.Config.Token = session.Token()
	a.log.Info("logged in", "url", a.Config.URL)
	if a.JSON {
		return a.printJSON(map[string]string{"authToken": session.Token()})
	}
	_, err = fmt.Fprintln(a.Out, session.Token())
	return err
}

func (a *App) Info(ctx context.Context) error {
	info, err := a.Session().AppInfo(ctx)
	if err != nil {
		return err
	}
	if a.JSON {
		return a.printJSON(info)
	}
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "version\t%s\n", info.AppVersion)
	fmt.Fprintf(w, "db version\t%d\n", info.DBVersion)
	fmt.Fprintf(w, "sync version\t%d\n", info.SyncVersion)
	fmt.Fprintf(w, "build\t%s %s\n", info.BuildDate, info.BuildRevision)
	return w.Flush()
}

func (a *App) Get(ctx context.Context, id string) error {
	noteID, err := models.ParseEntityID(id)
	if err != nil {
		return err
	}
	note, err := a.Session().GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	return a.printNote(note)
}

// CreateArgs are the inputs of the create command.
type CreateArgs struct {
	Parent   string
	Title    string
	Type     string
	Mime     string
	Content  string
	Prefix   string
	Position *int
	NoteID   string
}

func (a *App) Create(ctx context.Context, args CreateArgs) error {
	parent, err := models.ParseEntityID(args.Parent)
	if err != nil {
		return err
	}
	noteType, err := models.ParseNoteType(args.Type)
	if err != nil {
		return err
	}

	req := models.NewCreateNoteRequest(parent, args.Title, noteType, args.Content)
	if args.Mime != "" {
		req = req.WithMime(args.Mime)
	}
	if args.Prefix != "" {
		req = req.WithPrefix(args.Prefix)
	}
	if args.Position != nil {
		req = req.WithPosition(*args.Position)
	}
	if args.NoteID != "" {
		req.NoteID = models.EntityID(args.NoteID)
	}

	created, err := a.Session().CreateNote(ctx, req)
	if err != nil {
		return err
	}
	a.log.Debug("note created", "noteId", created.Note.NoteID, "branchId", created.Branch.BranchID)
	if a.JSON {
		return a.printJSON(created)
	}
	_, err = fmt.Fprintf(a.Out, "%s\t%s\n", created.Note.NoteID, created.Branch.BranchID)
	return err
}

// PatchArgs are the inputs of the patch command. Empty fields are left as
// they are on the server.
type PatchArgs struct {
	ID    string
	Title string
	Type  string
	Mime  string
}

// Patch fetches the note, applies the changed fields and sends it back.
func (a *App) Patch(ctx context.Context, args PatchArgs) error {
	noteID, err := models.ParseEntityID(args.ID)
	if err != nil {
		return err
	}
	session := a.Session()
	note, err := session.GetNote(ctx, noteID)
	if err != nil {
		return err
	}

	if args.Title != "" {
		note.Title = args.Title
	}
	if args.Type != "" {
		if note.Type, err = models.ParseNoteType(args.Type); err != nil {
			return err
		}
	}
	if args.Mime != "" {
		note.Mime = args.Mime
	}

	updated, err := session.PatchNote(ctx, *note)
	if err != nil {
		return err
	}
	return a.printNote(updated)
}

func (a *App) Delete(ctx context.Context, id string) error {
	noteID, err := models.ParseEntityID(id)
	if err != nil {
		return err
	}
	if err := a.Session().DeleteNote(ctx, noteID); err != nil {
		return err
	}
	a.log.Info("note deleted", "noteId", noteID)
	return nil
}

// SearchArgs are the inputs of the search command.
type SearchArgs struct {
	Query          string
	Fast           bool
	Archived       bool
	Ancestor       string
	Depth          string
	OrderBy        string
	OrderDirection string
	Limit          *uint
	Debug          bool
}

// Options converts the arguments to search options.
func (args SearchArgs) Options() (search.Options, error) {
	opts := search.New(args.Query)
	if args.Fast {
		opts = opts.Fast()
	}
	if args.Archived {
		opts = opts.WithArchived()
	}
	if args.Ancestor != "" || args.Depth != "" {
		var depth *search.Depth
		if args.Depth != "" {
			var err error
			if depth, err = search.ParseDepth(args.Depth); err != nil {
				return search.Options{}, err
			}
		}
		opts = opts.Within(models.EntityID(args.Ancestor), depth)
	}
	if args.OrderBy != "" {
		dir := search.Ascending
		if args.OrderDirection != "" {
			var err error
			if dir, err = search.ParseOrderDirection(args.OrderDirection); err != nil {
				return search.Options{}, err
			}
		}
		opts = opts.OrderedBy(args.OrderBy, dir)
	}
	if args.Limit != nil {
		opts = opts.Limited(*args.Limit)
	}
	if args.Debug {
		opts = opts.WithDebug()
	}
	return opts, nil
}

func (a *App) Search(ctx context.Context, args SearchArgs) error {
	opts, err := args.Options()
	if err != nil {
		return err
	}
	a.log.Debug("searching", "query", opts.QueryString())

	resp, err := a.Session().SearchNotes(ctx, opts)
	if err != nil {
		return err
	}
	if a.JSON {
		return a.printJSON(resp)
	}
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	for _, n := range resp.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.NoteID, n.Type, n.Title)
	}
	return w.Flush()
}

// SaveToken writes the current token into the config file at path, keeping
// the other settings found there.
func (a *App) SaveToken(path string) error {
	stored, err := ReadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		stored = &Config{URL: a.Config.URL}
	}
	stored.Token = a.Config.Token
	if err := WriteConfigFile(path, stored); err != nil {
		return err
	}
	a.log.Info("token saved", "path", path)
	return nil
}

func (a *App) printNote(n *models.Note) error {
	if a.JSON {
		return a.printJSON(n)
	}
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", n.NoteID)
	fmt.Fprintf(w, "title\t%s\n", n.Title)
	fmt.Fprintf(w, "type\t%s\n", n.Type)
	fmt.Fprintf(w, "mime\t%s\n", n.Mime)
	fmt.Fprintf(w, "parents\t%v\n", n.ParentNoteIDs)
	fmt.Fprintf(w, "children\t%v\n", n.ChildNoteIDs)
	for _, attr := range n.Attributes {
		fmt.Fprintf(w, "attribute\t%s=%s\n", attr.Name, attr.Value)
	}
	if modified, err := n.UTCDateModified.Time(); err == nil {
		fmt.Fprintf(w, "modified\t%s\n", modified.Format("2006-01-02 15:04:05 MST"))
	}
	return w.Flush()
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
