/*
Package schema resolves entity metadata for the filter compiler.

The compiler never inspects storage directly; it asks an [Introspector] for the
semantic type of a field, the column backing it, and the join metadata of one-hop
relations. [Static] is a map-backed implementation declared in code:

	intr := schema.NewStatic(map[string]schema.Entity{
	    "Order": {
	        Table: "orders",
	        Fields: map[string]schema.Type{
	            "status":     {Kind: schema.String},
	            "amount":     {Kind: schema.Decimal},
	            "created_at": {Kind: schema.DateTime},
	        },
	        Relations: map[string]schema.Relation{
	            "customer": {Entity: "Customer", Column: "id", References: "customer_id"},
	            "lines":    {Entity: "OrderLine", Column: "order_id", References: "id", HasMany: true},
	        },
	    },
	})

Column names default to the snake_case form of the field name.
*/
package schema
