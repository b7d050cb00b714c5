package ast

// Body is the executable part of a function, constant or static.
type Body struct {
	id     BodyId
	owner  ItemId
	params []Parameter
	value  Expr
}

func NewBody(id BodyId, owner ItemId, params []Parameter, value Expr) Body {
	return Body{id: id, owner: owner, params: params, value: value}
}

func (b *Body) ID() BodyId          { return b.id }
func (b *Body) Owner() ItemId       { return b.owner }
func (b *Body) Params() []Parameter { return b.params }
func (b *Body) Expr() Expr          { return b.value }
