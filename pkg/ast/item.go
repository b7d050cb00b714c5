package ast

// ItemKind enumerates the item variants of the portable AST.
type ItemKind uint8

const (
	ItemExternCrate ItemKind = iota + 1
	ItemUse
	ItemStatic
	ItemConst
	ItemFn
	ItemMod
	ItemTyAlias
	ItemImpl
)

func (k ItemKind) String() string {
	switch k {
	case ItemExternCrate:
		return "extern-crate"
	case ItemUse:
		return "use"
	case ItemStatic:
		return "static"
	case ItemConst:
		return "const"
	case ItemFn:
		return "fn"
	case ItemMod:
		return "mod"
	case ItemTyAlias:
		return "type-alias"
	case ItemImpl:
		return "impl"
	}
	return "unknown"
}

// Item is implemented by every item node.
type Item interface {
	ID() ItemId
	SpanID() SpanId
	Name() SymbolId
	Kind() ItemKind
	item()
}

// AssocItem is an item that may appear inside an impl block.
type AssocItem interface {
	Item
	assocItem()
}

// CommonItemData is the header shared by all items.
type CommonItemData struct {
	id   ItemId
	span SpanId
	name SymbolId
}

func NewCommonItemData(id ItemId, span SpanId, name SymbolId) CommonItemData {
	return CommonItemData{id: id, span: span, name: name}
}

func (d CommonItemData) ID() ItemId     { return d.id }
func (d CommonItemData) SpanID() SpanId { return d.span }
func (d CommonItemData) Name() SymbolId { return d.name }

// ExternCrateItem is `extern crate original as name;`.
type ExternCrateItem struct {
	CommonItemData
	crateName SymbolId
}

func NewExternCrateItem(data CommonItemData, crateName SymbolId) ExternCrateItem {
	return ExternCrateItem{CommonItemData: data, crateName: crateName}
}

// CrateName is the name of the crate as published, which differs from Name
// when the crate was renamed.
func (i *ExternCrateItem) CrateName() SymbolId { return i.crateName }
func (*ExternCrateItem) Kind() ItemKind        { return ItemExternCrate }
func (*ExternCrateItem) item()                 {}

// UseKind distinguishes single imports from glob imports.
type UseKind uint8

const (
	UseSingle UseKind = iota + 1
	UseGlob
)

// UseItem is one imported path. Grouped imports are flattened by the host, so
// every UseItem carries exactly one path.
type UseItem struct {
	CommonItemData
	path    AstPath
	useKind UseKind
}

func NewUseItem(data CommonItemData, path AstPath, kind UseKind) UseItem {
	return UseItem{CommonItemData: data, path: path, useKind: kind}
}

func (i *UseItem) Path() AstPath    { return i.path }
func (i *UseItem) UseKind() UseKind { return i.useKind }
func (*UseItem) Kind() ItemKind     { return ItemUse }
func (*UseItem) item()               {}

type StaticItem struct {
	CommonItemData
	mutable bool
	body    BodyId
	ty      SynTy
}

func NewStaticItem(data CommonItemData, mutable bool, body BodyId, ty SynTy) StaticItem {
	return StaticItem{CommonItemData: data, mutable: mutable, body: body, ty: ty}
}

func (i *StaticItem) IsMutable() bool { return i.mutable }
func (i *StaticItem) Body() BodyId    { return i.body }
func (i *StaticItem) Ty() SynTy       { return i.ty }
func (*StaticItem) Kind() ItemKind    { return ItemStatic }
func (*StaticItem) item()             {}

// ConstItem is a constant; inside traits the body may be absent.
type ConstItem struct {
	CommonItemData
	ty      SynTy
	body    BodyId
	hasBody bool
}

func NewConstItem(data CommonItemData, ty SynTy, body BodyId, hasBody bool) ConstItem {
	return ConstItem{CommonItemData: data, ty: ty, body: body, hasBody: hasBody}
}

func (i *ConstItem) Ty() SynTy            { return i.ty }
func (i *ConstItem) Body() (BodyId, bool) { return i.body, i.hasBody }
func (*ConstItem) Kind() ItemKind         { return ItemConst }
func (*ConstItem) item()                    {}
func (*ConstItem) assocItem()               {}

type FnItem struct {
	CommonItemData
	generics GenericParams
	callable CommonCallableData
	body     BodyId
	hasBody  bool
}

func NewFnItem(data CommonItemData, generics GenericParams, callable CommonCallableData, body BodyId, hasBody bool) FnItem {
	return FnItem{CommonItemData: data, generics: generics, callable: callable, body: body, hasBody: hasBody}
}

func (i *FnItem) Generics() *GenericParams      { return &i.generics }
func (i *FnItem) Callable() *CommonCallableData { return &i.callable }
func (i *FnItem) Params() []Parameter           { return i.callable.params }
func (i *FnItem) ReturnTy() SynTy               { return i.callable.returnTy }
func (i *FnItem) Body() (BodyId, bool)          { return i.body, i.hasBody }
func (*FnItem) Kind() ItemKind                  { return ItemFn }
func (*FnItem) item()                                {}
func (*FnItem) assocItem()                           {}

// ModItem holds the items of a module in declaration order.
type ModItem struct {
	CommonItemData
	items []Item
}

func NewModItem(data CommonItemData, items []Item) ModItem {
	return ModItem{CommonItemData: data, items: items}
}

func (i *ModItem) Items() []Item { return i.items }
func (*ModItem) Kind() ItemKind  { return ItemMod }
func (*ModItem) item()           {}

// TyAliasItem is `type Name<G> = Ty;`. Associated types in traits may have no
// aliased type.
type TyAliasItem struct {
	CommonItemData
	generics GenericParams
	aliased  SynTy
}

func NewTyAliasItem(data CommonItemData, generics GenericParams, aliased SynTy) TyAliasItem {
	return TyAliasItem{CommonItemData: data, generics: generics, aliased: aliased}
}

func (i *TyAliasItem) Generics() *GenericParams { return &i.generics }
func (i *TyAliasItem) AliasedTy() SynTy         { return i.aliased }
func (*TyAliasItem) Kind() ItemKind             { return ItemTyAlias }
func (*TyAliasItem) item()                       {}
func (*TyAliasItem) assocItem()                  {}

type ImplItem struct {
	CommonItemData
	unsafe   bool
	positive bool
	traitRef *TraitRef
	generics GenericParams
	selfTy   SynTy
	items    []AssocItem
}

func NewImplItem(
	data CommonItemData,
	unsafe, positive bool,
	traitRef *TraitRef,
	generics GenericParams,
	selfTy SynTy,
	items []AssocItem,
) ImplItem {
	return ImplItem{
		CommonItemData: data,
		unsafe:         unsafe,
		positive:       positive,
		traitRef:       traitRef,
		generics:       generics,
		selfTy:         selfTy,
		items:          items,
	}
}

func (i *ImplItem) IsUnsafe() bool           { return i.unsafe }
func (i *ImplItem) IsNegative() bool         { return !i.positive }
func (i *ImplItem) TraitRef() *TraitRef      { return i.traitRef }
func (i *ImplItem) Generics() *GenericParams { return &i.generics }
func (i *ImplItem) SelfTy() SynTy            { return i.selfTy }
func (i *ImplItem) Items() []AssocItem       { return i.items }
func (*ImplItem) Kind() ItemKind             { return ItemImpl }
func (*ImplItem) item()                      {}

// Crate is the root of one compiled unit.
type Crate struct {
	id   CrateId
	root *ModItem
}

func NewCrate(id CrateId, root *ModItem) Crate { return Crate{id: id, root: root} }

func (c *Crate) ID() CrateId    { return c.id }
func (c *Crate) Root() *ModItem { return c.root }
func (c *Crate) Items() []Item  { return c.root.Items() }
