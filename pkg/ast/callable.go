package ast

// Abi is the calling convention of a callable.
type Abi uint8

const (
	AbiDefault Abi = iota
	AbiC
	AbiOther
)

func (a Abi) String() string {
	switch a {
	case AbiDefault:
		return "default"
	case AbiC:
		return "C"
	}
	return "other"
}

// Parameter is one input of a callable. Pat is nil for signatures without a
// body.
type Parameter struct {
	pat  Pat
	ty   SynTy
	span SpanId
}

func NewParameter(pat Pat, ty SynTy, span SpanId) Parameter {
	return Parameter{pat: pat, ty: ty, span: span}
}

func (p *Parameter) Pat() Pat       { return p.pat }
func (p *Parameter) Ty() SynTy      { return p.ty }
func (p *Parameter) SpanID() SpanId { return p.span }

// CommonCallableData is the signature part shared by functions and methods.
type CommonCallableData struct {
	isConst  bool
	isAsync  bool
	isUnsafe bool
	isExtern bool
	abi      Abi
	hasSelf  bool
	params   []Parameter
	returnTy SynTy
}

func NewCommonCallableData(
	isConst, isAsync, isUnsafe, isExtern bool,
	abi Abi,
	hasSelf bool,
	params []Parameter,
	returnTy SynTy,
) CommonCallableData {
	return CommonCallableData{
		isConst:  isConst,
		isAsync:  isAsync,
		isUnsafe: isUnsafe,
		isExtern: isExtern,
		abi:      abi,
		hasSelf:  hasSelf,
		params:   params,
		returnTy: returnTy,
	}
}

func (c *CommonCallableData) IsConst() bool  { return c.isConst }
func (c *CommonCallableData) IsAsync() bool  { return c.isAsync }
func (c *CommonCallableData) IsUnsafe() bool { return c.isUnsafe }
func (c *CommonCallableData) IsExtern() bool { return c.isExtern }
func (c *CommonCallableData) Abi() Abi       { return c.abi }

// HasSelf reports whether the first parameter is an implicit `self`.
func (c *CommonCallableData) HasSelf() bool       { return c.hasSelf }
func (c *CommonCallableData) Params() []Parameter { return c.params }

// ReturnTy is nil for the default `()` return.
func (c *CommonCallableData) ReturnTy() SynTy { return c.returnTy }
