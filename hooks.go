package historyhooks

import "log"

// ──────────────────────────────────────────────
// Request Hooks — pre-send pipeline for provider requests
// ──────────────────────────────────────────────
//
// Each hook wraps the next layer. Call next() to proceed; skip it to
// drop the request.
//
// Usage:
//
//	p := historyhooks.NewRequestPipeline()
//	p.Use(rewriter.Hook())
//	p.Execute(&historyhooks.RequestContext{Request: req}, func() {
//	    send(req)
//	})

// NextFunc proceeds to the next hook or the send function.
type NextFunc func()

// RequestHookFunc is the signature for all request hooks.
type RequestHookFunc func(ctx *RequestContext, next NextFunc)

// RequestContext is the shared context flowing through the pipeline.
type RequestContext struct {
	// Request is the outbound provider request being prepared.
	Request *ProviderRequest
	// Extra is an arbitrary map for hooks to attach/read data.
	Extra map[string]interface{}
}

// RequestPipeline builds and executes an onion-model hook chain.
type RequestPipeline struct {
	hooks []RequestHookFunc
}

// NewRequestPipeline creates an empty pipeline.
func NewRequestPipeline() *RequestPipeline {
	return &RequestPipeline{}
}

// Use appends a hook to the pipeline.
func (p *RequestPipeline) Use(h RequestHookFunc) {
	p.hooks = append(p.hooks, h)
}

// Len returns the number of registered hooks.
func (p *RequestPipeline) Len() int {
	return len(p.hooks)
}

// Execute runs the full chain ending with send.
//
// The pipeline builds an onion chain:
//
//	hooks[0].before → hooks[1].before → send → hooks[1].after → hooks[0].after
//
// A panicking hook is logged and treated as a pass-through: the chain
// continues, so one faulty hook cannot abort the host's request.
func (p *RequestPipeline) Execute(ctx *RequestContext, send func()) {
	if len(p.hooks) == 0 {
		send()
		return
	}

	// Build chain from inside out
	chain := send
	for i := len(p.hooks) - 1; i >= 0; i-- {
		h := p.hooks[i]
		next := chain
		chain = func() {
			runHook(h, ctx, next)
		}
	}

	chain()
}

func runHook(h RequestHookFunc, ctx *RequestContext, next NextFunc) {
	advanced := false
	step := func() {
		if !advanced {
			advanced = true
			next()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RequestPipeline] hook panic: %v", r)
			step()
		}
	}()
	h(ctx, step)
}

// Hook adapts the rewriter into a request hook. It rewrites the
// request's full history and logs per-session replacement counts.
func (rw *ReminderRewriter) Hook() RequestHookFunc {
	return func(ctx *RequestContext, next NextFunc) {
		if ctx.Request != nil && len(ctx.Request.Contexts) > 0 {
			if n := rw.Rewrite(ctx.Request.Contexts); n > 0 {
				log.Printf("[ReminderRewriter] %s: rewrote %d datetime reminder field(s)",
					sessionLabel(ctx.Request), n)
			}
		}
		next()
	}
}

func sessionLabel(req *ProviderRequest) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	return "unknown"
}
