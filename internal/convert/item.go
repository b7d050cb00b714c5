package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/pkg/ast"
)

// reserveItem allocates an empty item and caches it under id before any
// child is converted.
func reserveItem[T any, P interface {
	*T
	ast.Item
}](c *Converter, arena *Arena[T], id ast.ItemId) P {
	shell := P(newNode(c.store, arena, *new(T)))
	c.items[id] = shell
	return shell
}

// item converts a host item. It returns nil for skipped items.
func (c *Converter) item(hi *host.Item) ast.Item {
	id := c.itemID(hi.DefId)
	if it, ok := c.items[id]; ok {
		return it
	}

	// skip and not-yet-implemented are decided before anything is allocated
	switch hi.Kind {
	case host.ItemMacro, host.ItemGlobalAsm:
		c.skip(hi.Kind.String()+" item", hi.Span)
		return nil
	case host.ItemUse:
		if hi.Use.Kind == host.UseListStem {
			c.skip("use list stem", hi.Span)
			return nil
		}
	case host.ItemForeignMod, host.ItemOpaqueTy, host.ItemEnum, host.ItemStruct,
		host.ItemUnion, host.ItemTrait, host.ItemTraitAlias:
		c.notYetImplemented(hi.Kind.String()+" item", hi.Span)
	}

	data := ast.NewCommonItemData(id, c.spanID(hi.Span), c.symbolID(hi.Ident.Name))
	switch hi.Kind {
	case host.ItemExternCrate:
		shell := reserveItem(c, &c.store.items.externCrates, id)
		name := data.Name()
		if hi.ExternCrate.HasOriginal {
			name = c.symbolID(hi.ExternCrate.Original)
		}
		*shell = ast.NewExternCrateItem(data, name)
		return shell

	case host.ItemUse:
		shell := reserveItem(c, &c.store.items.uses, id)
		kind := ast.UseSingle
		if hi.Use.Kind == host.UseGlob {
			kind = ast.UseGlob
		}
		*shell = ast.NewUseItem(data, c.path(hi.Use.Path), kind)
		return shell

	case host.ItemStatic:
		shell := reserveItem(c, &c.store.items.statics, id)
		s := hi.Static
		*shell = ast.NewStaticItem(data, s.Mutable, c.bodyID(s.Body), c.ty(s.Ty))
		return shell

	case host.ItemConst:
		shell := reserveItem(c, &c.store.items.consts, id)
		*shell = c.constItem(data, hi.Const)
		return shell

	case host.ItemFn:
		shell := reserveItem(c, &c.store.items.fns, id)
		*shell = c.fnItem(data, hi.Fn)
		return shell

	case host.ItemMod:
		shell := reserveItem(c, &c.store.items.mods, id)
		*shell = ast.NewModItem(data, c.itemList(hi.Mod.Items))
		return shell

	case host.ItemTyAlias:
		shell := reserveItem(c, &c.store.items.tyAliases, id)
		*shell = c.tyAliasItem(data, hi.TyAlias)
		return shell

	case host.ItemImpl:
		shell := reserveItem(c, &c.store.items.impls, id)
		imp := hi.Impl
		var traitRef *ast.TraitRef
		if imp.OfTrait != nil {
			tr := c.traitRef(imp.OfTrait)
			traitRef = &tr
		}
		*shell = ast.NewImplItem(
			data,
			imp.Unsafe,
			!imp.Negative,
			traitRef,
			c.generics(imp.Generics),
			c.ty(imp.SelfTy),
			c.implItemList(imp.Items),
		)
		return shell
	}

	c.fail(fmt.Errorf("convert: unknown item kind %d", hi.Kind))
	return nil
}

// itemByDefId looks up and converts a host item.
func (c *Converter) itemByDefId(def host.DefId) ast.Item {
	if it, ok := c.items[c.itemID(def)]; ok {
		return it
	}
	hi, ok := c.sess.Item(def)
	if !ok {
		c.fail(fmt.Errorf("convert: unknown item %v", def))
	}
	return c.item(hi)
}

// itemList converts module items in order, dropping skipped ones.
func (c *Converter) itemList(ids []host.DefId) []ast.Item {
	if len(ids) == 0 {
		return nil
	}
	items := make([]ast.Item, 0, len(ids))
	for _, def := range ids {
		if it := c.itemByDefId(def); it != nil {
			items = append(items, it)
		}
	}
	return items
}

// implItem converts an associated item of an impl block.
func (c *Converter) implItem(ii *host.ImplItem) ast.AssocItem {
	id := c.itemID(ii.DefId)
	if it, ok := c.items[id]; ok {
		assoc, ok := it.(ast.AssocItem)
		if !ok {
			c.fail(fmt.Errorf("convert: %v is cached as a %s item", id, it.Kind()))
		}
		return assoc
	}

	data := ast.NewCommonItemData(id, c.spanID(ii.Span), c.symbolID(ii.Ident.Name))
	switch ii.Kind {
	case host.ImplItemConst:
		shell := reserveItem(c, &c.store.items.consts, id)
		*shell = c.constItem(data, ii.Const)
		return shell
	case host.ImplItemFn:
		shell := reserveItem(c, &c.store.items.fns, id)
		fn := *ii.Fn
		if fn.Generics == nil {
			fn.Generics = ii.Generics
		}
		*shell = c.fnItem(data, &fn)
		return shell
	case host.ImplItemType:
		shell := reserveItem(c, &c.store.items.tyAliases, id)
		alias := *ii.TyAlias
		if alias.Generics == nil {
			alias.Generics = ii.Generics
		}
		*shell = c.tyAliasItem(data, &alias)
		return shell
	}

	c.fail(fmt.Errorf("convert: unknown impl item kind %d", ii.Kind))
	return nil
}

func (c *Converter) implItemList(refs []host.ImplItemRef) []ast.AssocItem {
	if len(refs) == 0 {
		return nil
	}
	items := make([]ast.AssocItem, 0, len(refs))
	for _, ref := range refs {
		ii, ok := c.sess.ImplItem(ref.Id)
		if !ok {
			c.fail(fmt.Errorf("convert: unknown impl item %v", ref.Id))
		}
		items = append(items, c.implItem(ii))
	}
	return items
}

func (c *Converter) constItem(data ast.CommonItemData, k *host.Const) ast.ConstItem {
	var body ast.BodyId
	if k.HasBody {
		body = c.bodyID(k.Body)
	}
	return ast.NewConstItem(data, c.ty(k.Ty), body, k.HasBody)
}

func (c *Converter) fnItem(data ast.CommonItemData, fn *host.Fn) ast.FnItem {
	var body ast.BodyId
	if fn.HasBody {
		body = c.bodyID(fn.Body)
	}
	return ast.NewFnItem(data, c.generics(fn.Generics), c.fnSig(&fn.Sig, fn.Body, fn.HasBody, false), body, fn.HasBody)
}

func (c *Converter) tyAliasItem(data ast.CommonItemData, alias *host.TyAlias) ast.TyAliasItem {
	var aliased ast.SynTy
	if alias.Ty != nil {
		aliased = c.ty(alias.Ty)
	}
	return ast.NewTyAliasItem(data, c.generics(alias.Generics), aliased)
}

// fnSig converts a signature. Parameter patterns come from the body when the
// function has one.
func (c *Converter) fnSig(sig *host.FnSig, bodyID host.BodyId, hasBody, isExtern bool) ast.CommonCallableData {
	var hostParams []host.Param
	if hasBody {
		if b, ok := c.sess.Body(bodyID); ok {
			hostParams = b.Params
		}
	}

	var params []ast.Parameter
	if n := len(sig.Decl.Inputs); n > 0 {
		params = make([]ast.Parameter, n)
		for i, input := range sig.Decl.Inputs {
			var pat ast.Pat
			span := input.Span
			if i < len(hostParams) {
				pat = c.pat(hostParams[i].Pat)
				span = hostParams[i].Span
			}
			params[i] = ast.NewParameter(pat, c.ty(input), c.spanID(span))
		}
	}

	var ret ast.SynTy
	if sig.Decl.Output != nil {
		ret = c.ty(sig.Decl.Output)
	}
	h := sig.Header
	return ast.NewCommonCallableData(
		h.Const,
		h.Async,
		h.Unsafe,
		isExtern,
		abi(h.Abi),
		sig.Decl.ImplicitSelf,
		params,
		ret,
	)
}

func abi(a host.Abi) ast.Abi {
	switch a {
	case host.AbiRust:
		return ast.AbiDefault
	case host.AbiC, host.AbiCUnwind:
		return ast.AbiC
	}
	return ast.AbiOther
}
