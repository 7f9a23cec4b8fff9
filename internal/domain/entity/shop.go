package entity

// ShopInfo identidad fija de la tienda que emite la factura.
type ShopInfo struct {
	Name    string
	Address []string
	Email   string
	Phone   string
}

// PandaStore datos de la tienda impresos en el bloque "Facturado Por".
var PandaStore = ShopInfo{
	Name:    "PandaStore",
	Address: []string{"Reparto San Juan,", "Managua,", "Nicaragua - 11027"},
	Email:   "pandastorenic@gmail.com",
	Phone:   "+505 8372 5528",
}
