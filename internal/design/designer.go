package design

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oligodesigner/oligod/internal/oligo"
	"github.com/oligodesigner/oligod/internal/validate"
)

// Designer orchestrates a design request: validate the input, assign
// sequences, derive strands, report
type Designer struct {
	searcher *Searcher
	engine   *validate.Engine
	logger   *zap.SugaredLogger
}

// NewDesigner creates a designer
func NewDesigner(searcher *Searcher, engine *validate.Engine, logger *zap.SugaredLogger) *Designer {
	return &Designer{
		searcher: searcher,
		engine:   engine,
		logger:   logger,
	}
}

// Run executes a full design: all or nothing. A pool exhaustion or
// assignment failure aborts before any response is assembled
func (d *Designer) Run(ctx context.Context, req *Request) (*Response, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	d.logger.Infow("design request",
		"domains", len(req.Domains),
		"strands", len(req.Strands),
	)

	domains := make([]*Domain, len(req.Domains))
	for i := range req.Domains {
		copied := req.Domains[i]
		domains[i] = &copied
	}

	session := NewSession()
	if err := d.searcher.Assign(ctx, domains, session); err != nil {
		return nil, err
	}

	return d.respond(domains, req.Strands), nil
}

// ValidateOnly reports on sequences the request already carries,
// generating nothing
func (d *Designer) ValidateOnly(req *Request) (*Response, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	domains := make([]*Domain, len(req.Domains))
	for i := range req.Domains {
		copied := req.Domains[i]
		domains[i] = &copied
	}

	return d.respond(domains, req.Strands), nil
}

// respond derives strand sequences by concatenation, validates them
// and the cross interactions, and assembles the output contract
func (d *Designer) respond(domains []*Domain, specs []StrandSpec) *Response {
	byID := make(map[int]*Domain, len(domains))
	for _, dom := range domains {
		byID[dom.ID] = dom
	}

	strands := make([]Strand, 0, len(specs))
	strandParts := make(map[int][]string, len(specs))
	strandDeclared := make(map[int]int, len(specs))
	for _, spec := range specs {
		var (
			derived  string
			parts    []string
			declared int
		)
		for _, id := range spec.Domains {
			dom := byID[id]
			derived += dom.Sequence
			parts = append(parts, dom.Sequence)
			declared += dom.Length
		}

		// a caller-supplied sequence is validated as-is, not replaced
		seq := spec.Sequence
		if seq == "" {
			seq = derived
		}

		strands = append(strands, Strand{
			ID:        spec.ID,
			Name:      spec.Name,
			DomainIDs: spec.Domains,
			Sequence:  seq,
		})
		strandParts[spec.ID] = parts
		strandDeclared[spec.ID] = declared
	}

	strandValidation := make(map[int]map[string]validate.Result, len(strands))
	strandSummaries := make(map[int]validate.Summary, len(strands))
	crossInput := make([]validate.StrandSeq, 0, len(strands))
	for i := range strands {
		s := &strands[i]
		if s.Sequence == "" {
			continue
		}
		checks := d.engine.Strand(s.Sequence, strandDeclared[s.ID], strandParts[s.ID])
		strandValidation[s.ID] = checks
		strandSummaries[s.ID] = validate.Summarize(checks)
		s.Validated = true
		crossInput = append(crossInput, validate.StrandSeq{
			ID:       s.ID,
			Name:     s.Name,
			Sequence: s.Sequence,
		})
	}

	cross := d.engine.CrossInteractions(crossInput)
	crossSummaries := make(map[string]validate.Summary, len(cross))
	for key, checks := range cross {
		crossSummaries[key] = validate.Summarize(checks)
	}

	out := make([]Domain, len(domains))
	for i, dom := range domains {
		out[i] = *dom
	}

	return &Response{
		Success: true,
		Domains: out,
		Strands: strands,
		Validation: Validation{
			StrandValidation: strandValidation,
			StrandSummaries:  strandSummaries,
			CrossValidation:  cross,
			CrossSummaries:   crossSummaries,
		},
		Metadata: Metadata{
			GeneratedAt:  time.Now().UTC(),
			TotalDomains: len(domains),
			TotalStrands: len(strands),
		},
	}
}

// checkRequest rejects malformed requests before any search runs
func checkRequest(req *Request) error {
	if len(req.Domains) == 0 {
		return fmt.Errorf("%w: no domains", ErrInvalidInput)
	}

	ids := make(map[int]*Domain, len(req.Domains))
	for i := range req.Domains {
		d := &req.Domains[i]

		if _, dup := ids[d.ID]; dup {
			return fmt.Errorf("%w: duplicate domain id %d", ErrInvalidInput, d.ID)
		}
		ids[d.ID] = d

		if d.Length <= 0 {
			return fmt.Errorf("%w: domain %q has length %d", ErrInvalidInput, d.Name, d.Length)
		}

		if d.Sequence != "" {
			seq, err := oligo.Validate(d.Sequence)
			if err != nil {
				return fmt.Errorf("%w: domain %q: %v", ErrInvalidInput, d.Name, err)
			}
			if len(seq) != d.Length {
				return fmt.Errorf("%w: domain %q sequence length %d does not match declared %d",
					ErrInvalidInput, d.Name, len(seq), d.Length)
			}
			d.Sequence = seq
		}

		switch d.Role {
		case RoleForward, RoleIndependent, "":
			if d.ComplementOf != nil {
				return fmt.Errorf("%w: domain %q has complementOf but role %q",
					ErrInvalidInput, d.Name, d.Role)
			}
		case RoleComplement:
			if d.ComplementOf == nil {
				return fmt.Errorf("%w: complement domain %q names no partner",
					ErrInvalidInput, d.Name)
			}
		default:
			return fmt.Errorf("%w: domain %q has unknown role %q", ErrInvalidInput, d.Name, d.Role)
		}
	}

	for i := range req.Domains {
		d := &req.Domains[i]
		if d.Role != RoleComplement {
			continue
		}

		partner, ok := ids[*d.ComplementOf]
		if !ok {
			return fmt.Errorf("%w: complement domain %q names unknown domain %d",
				ErrInvalidInput, d.Name, *d.ComplementOf)
		}
		if partner.Role == RoleComplement {
			return fmt.Errorf("%w: complement domain %q chains to another complement",
				ErrInvalidInput, d.Name)
		}
		if partner.Length != d.Length {
			return fmt.Errorf("%w: complement domain %q length %d does not match partner length %d",
				ErrInvalidInput, d.Name, d.Length, partner.Length)
		}
	}

	for i := range req.Strands {
		spec := &req.Strands[i]

		if len(spec.Domains) == 0 {
			return fmt.Errorf("%w: strand %q names no domains", ErrInvalidInput, spec.Name)
		}
		for _, id := range spec.Domains {
			if _, ok := ids[id]; !ok {
				return fmt.Errorf("%w: strand %q names unknown domain %d",
					ErrInvalidInput, spec.Name, id)
			}
		}

		if spec.Sequence != "" {
			seq, err := oligo.Validate(spec.Sequence)
			if err != nil {
				return fmt.Errorf("%w: strand %q: %v", ErrInvalidInput, spec.Name, err)
			}
			spec.Sequence = seq
		}
	}

	return nil
}
