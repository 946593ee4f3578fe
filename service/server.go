package service

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/compviz-xyz/go-compviz/compiler"
	"github.com/compviz-xyz/go-compviz/runlog"
)

// Server wraps the reference compiler behind the analyze and compile
// contracts and broadcasts stage events to websocket subscribers.
type Server struct {
	mu sync.RWMutex

	// Connected event subscribers
	subscribers map[*websocket.Conn]bool

	upgrader websocket.Upgrader
	log      runlog.Recorder
}

// Option configures a Server.
type Option func(*Server)

// WithRunLog records completed requests to the given recorder.
func WithRunLog(rec runlog.Recorder) Option {
	return func(s *Server) {
		s.log = rec
	}
}

// NewServer creates a compilation service server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		subscribers: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP mux with all service routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/compile", s.handleCompile)
	mux.HandleFunc("/events", s.handleEvents)
	return mux
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, AnalyzeResponse{Success: false, Detail: "invalid request body"})
		return
	}

	requestID := uuid.New().String()
	started := time.Now()

	tokens, symbols, err := compiler.Analyze(req.Code)
	if err != nil {
		s.broadcast(StageEvent{RequestID: requestID, Stage: StageLexical, Detail: err.Error()})
		s.record(requestID, "analyze", req.Code, started, err)
		writeJSON(w, AnalyzeResponse{Success: false, Detail: err.Error()})
		return
	}

	s.broadcast(StageEvent{RequestID: requestID, Stage: StageLexical, Success: true})
	s.record(requestID, "analyze", req.Code, started, nil)
	writeJSON(w, AnalyzeResponse{Success: true, Tokens: tokens, SymbolTable: symbols})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, CompileResponse{Success: false, Detail: "invalid request body"})
		return
	}

	requestID := uuid.New().String()
	started := time.Now()

	res, err := compiler.Compile(req.Code, compiler.TypeTable(req.TypeTable))
	if err != nil {
		s.broadcast(StageEvent{RequestID: requestID, Stage: StageSyntax, Detail: err.Error()})
		s.record(requestID, "compile", req.Code, started, err)
		writeJSON(w, CompileResponse{Success: false, Detail: err.Error()})
		return
	}

	for _, stage := range []string{
		StageLexical, StageSyntax, StageSemantic,
		StageIntermediate, StageOptimized, StageAssembly,
	} {
		s.broadcast(StageEvent{RequestID: requestID, Stage: stage, Success: true})
	}
	s.record(requestID, "compile", req.Code, started, nil)

	writeJSON(w, CompileResponse{
		Success:          true,
		Lexical:          &LexicalArtifacts{Tokens: res.Tokens, SymbolTable: res.Symbols},
		SyntaxTree:       res.SyntaxTree,
		SemanticTree:     res.SemanticTree,
		IntermediateCode: res.Intermediate,
		OptimizedCode:    res.Optimized,
		AssemblyCode:     res.Assembly,
	})
}

// handleEvents upgrades the connection and keeps it subscribed until it
// closes. Subscribers only receive; inbound messages are drained and
// dropped.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.subscribers[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.subscribers, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) subscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// broadcast pushes a stage event to every subscriber. Failed
// connections are dropped.
func (s *Server) broadcast(ev StageEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.subscribers {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(s.subscribers, conn)
			conn.Close()
		}
	}
}

func (s *Server) record(id, phase, source string, started time.Time, err error) {
	if s.log == nil {
		return
	}
	rec := runlog.Record{
		ID:       id,
		Time:     started,
		Phase:    phase,
		Source:   source,
		Success:  err == nil,
		Duration: time.Since(started),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if logErr := s.log.Append(rec); logErr != nil {
		log.Printf("run log append failed: %v", logErr)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: %v", err)
	}
}
