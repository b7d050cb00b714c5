package convert

import (
	"strconv"

	"marker/internal/host"
	"marker/pkg/ast"
)

// Host ids are rebuilt field by field as portable ids. Each constructor is
// guarded by the layout check of its pair; the Host* functions map back.

func (c *Converter) crateID(n host.CrateNum) ast.CrateId {
	c.requireLayout(layoutCrateId)
	return ast.CrateId(n)
}

func (c *Converter) symbolID(sym host.Symbol) ast.SymbolId {
	c.requireLayout(layoutSymbolId)
	return ast.SymbolId(sym)
}

// symbolForNum interns the decimal form of n once per pass.
func (c *Converter) symbolForNum(n uint32) ast.SymbolId {
	if sym, ok := c.numSymbols[n]; ok {
		return sym
	}
	sym := c.symbolID(c.sess.Intern(strconv.FormatUint(uint64(n), 10)))
	c.numSymbols[n] = sym
	return sym
}

func (c *Converter) itemID(id host.DefId) ast.ItemId {
	c.requireLayout(layoutItemId)
	return ast.NewItemId(uint32(id.Krate), uint32(id.Index))
}

func (c *Converter) genericID(id host.DefId) ast.GenericId {
	c.requireLayout(layoutGenericId)
	return ast.NewGenericId(uint32(id.Krate), uint32(id.Index))
}

func (c *Converter) tyDefID(id host.DefId) ast.TyDefId {
	c.requireLayout(layoutTyDefId)
	return ast.NewTyDefId(uint32(id.Krate), uint32(id.Index))
}

func (c *Converter) bodyID(id host.BodyId) ast.BodyId {
	c.requireLayout(layoutBodyId)
	return ast.NewBodyId(uint32(id.Owner), uint32(id.Local))
}

func (c *Converter) varID(id host.HirId) ast.VarId {
	c.requireLayout(layoutVarId)
	return ast.NewVarId(uint32(id.Owner), uint32(id.Local))
}

func (c *Converter) exprID(id host.HirId) ast.ExprId {
	c.requireLayout(layoutExprId)
	return ast.NewExprId(uint32(id.Owner), uint32(id.Local))
}

func (c *Converter) letStmtID(id host.HirId) ast.LetStmtId {
	c.requireLayout(layoutLetStmtId)
	return ast.NewLetStmtId(uint32(id.Owner), uint32(id.Local))
}

func (c *Converter) spanID(s host.Span) ast.SpanId {
	c.requireLayout(layoutSpanId)
	return ast.NewSpanId(uint32(s.Lo), uint32(s.Hi))
}

func HostCrateNum(id ast.CrateId) host.CrateNum { return host.CrateNum(id) }

func HostSymbol(id ast.SymbolId) host.Symbol { return host.Symbol(id) }

func HostDefId(id ast.ItemId) host.DefId {
	return host.DefId{Krate: host.CrateNum(id.Krate()), Index: host.DefIndex(id.Index())}
}

func HostGenericDefId(id ast.GenericId) host.DefId {
	return host.DefId{Krate: host.CrateNum(id.Krate()), Index: host.DefIndex(id.Index())}
}

func HostTyDefId(id ast.TyDefId) host.DefId {
	return host.DefId{Krate: host.CrateNum(id.Krate()), Index: host.DefIndex(id.Index())}
}

func HostBodyId(id ast.BodyId) host.BodyId {
	return host.BodyId{Owner: host.DefIndex(id.Owner()), Local: host.ItemLocalId(id.Index())}
}

func HostVarHirId(id ast.VarId) host.HirId {
	return host.HirId{Owner: host.DefIndex(id.Owner()), Local: host.ItemLocalId(id.Index())}
}

func HostExprHirId(id ast.ExprId) host.HirId {
	return host.HirId{Owner: host.DefIndex(id.Owner()), Local: host.ItemLocalId(id.Index())}
}

func HostLetStmtHirId(id ast.LetStmtId) host.HirId {
	return host.HirId{Owner: host.DefIndex(id.Owner()), Local: host.ItemLocalId(id.Index())}
}

func HostSpan(id ast.SpanId) host.Span {
	return host.Span{Lo: host.BytePos(id.Lo()), Hi: host.BytePos(id.Hi())}
}
