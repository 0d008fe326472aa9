package entity

import (
	"fmt"
	"sort"
)

// Capability es un permiso del conjunto cerrado que puede tener un usuario.
type Capability string

const (
	CapFinancial Capability = "financial"
	CapAnalytics Capability = "analytics"
	CapUsers     Capability = "users"
	CapSales     Capability = "sales"
	CapProducts  Capability = "products"
)

// AllCapabilities en orden estable.
var AllCapabilities = []Capability{CapFinancial, CapAnalytics, CapUsers, CapSales, CapProducts}

// ParseCapability convierte un string en Capability; error si no pertenece al conjunto.
func ParseCapability(s string) (Capability, error) {
	for _, c := range AllCapabilities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("capacidad desconocida %q", s)
}

// ParseCapabilities valida y normaliza una lista (sin duplicados, ordenada).
func ParseCapabilities(in []string) ([]Capability, error) {
	seen := make(map[Capability]struct{}, len(in))
	out := make([]Capability, 0, len(in))
	for _, s := range in {
		c, err := ParseCapability(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// CapabilityStrings devuelve la representación textual (persistencia y JSON).
func CapabilityStrings(caps []Capability) []string {
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, string(c))
	}
	return out
}
