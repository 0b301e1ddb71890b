// Package design holds the domain/strand model and the assignment
// search that picks pooled sequences for a design request
package design

import (
	"time"

	"github.com/oligodesigner/oligod/internal/validate"
)

// Role says how a domain gets its sequence
type Role string

const (
	// RoleForward domains draw from the pool and may carry a linked
	// complement
	RoleForward Role = "forward"

	// RoleComplement domains never draw: their sequence is the
	// reverse complement of the domain named by ComplementOf
	RoleComplement Role = "complement"

	// RoleIndependent domains draw from the pool with no linked
	// partner
	RoleIndependent Role = "independent"
)

// Domain is one designable segment. ComplementOf is set exactly when
// Role is RoleComplement
type Domain struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Length       int    `json:"length"`
	Sequence     string `json:"sequence"`
	Role         Role   `json:"role"`
	ComplementOf *int   `json:"complementOf,omitempty"`
}

// Strand is an ordered concatenation of domains
type Strand struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	DomainIDs []int  `json:"domainIds"`
	Sequence  string `json:"sequence"`
	Validated bool   `json:"validated"`
}

// StrandSpec names the domains a requested strand is built from.
// Sequence is optional: when set it is validated against the domain
// composition instead of being derived from it
type StrandSpec struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Domains  []int  `json:"domains"`
	Sequence string `json:"sequence,omitempty"`
}

// Request is one design job
type Request struct {
	Domains []Domain     `json:"domains"`
	Strands []StrandSpec `json:"strands"`
}

// Validation groups the per-strand and pairwise check maps, each
// with its PASS/WARNING/CRITICAL rollup
type Validation struct {
	StrandValidation map[int]map[string]validate.Result    `json:"strand_validation"`
	StrandSummaries  map[int]validate.Summary              `json:"strand_summaries"`
	CrossValidation  map[string]map[string]validate.Result `json:"cross_validation"`
	CrossSummaries   map[string]validate.Summary           `json:"cross_summaries"`
}

// Metadata describes one design run
type Metadata struct {
	GeneratedAt  time.Time `json:"generation_timestamp"`
	TotalDomains int       `json:"total_domains"`
	TotalStrands int       `json:"total_strands"`
}

// Response is the full output contract of a design run
type Response struct {
	Success    bool       `json:"success"`
	Domains    []Domain   `json:"domains"`
	Strands    []Strand   `json:"strands"`
	Validation Validation `json:"validation"`
	Metadata   Metadata   `json:"metadata"`
}
