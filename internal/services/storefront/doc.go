// Package storefront hosts the browser-facing shop and its admin back
// office.
//
// The root handler mounts public modules (products, cart, users, pages)
// and admin modules behind an admin guard. Every request passes through
// panic recovery, request ids, tracing, request logging, session
// resolution and a same-origin check for mutations, in that order.
package storefront
