// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/record"
	"github.com/bitmark-inc/provenanced/tracker"
)

func runRegister(c *cli.Context) error {

	owner, err := checkIdentity(c.String("owner"), "owner")
	if nil != err {
		return err
	}
	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	name, err := checkRequired(c.String("name"), "name")
	if nil != err {
		return err
	}
	origin, err := checkRequired(c.String("origin"), "origin")
	if nil != err {
		return err
	}
	category, err := checkRequired(c.String("category"), "category")
	if nil != err {
		return err
	}

	certifications, err := checkDigestList(c.StringSlice("certification"))
	if nil != err {
		return err
	}
	mediaHashes, err := checkDigestList(c.StringSlice("media"))
	if nil != err {
		return err
	}
	custom, err := checkCustom(c.StringSlice("custom"))
	if nil != err {
		return err
	}

	product, err := tracker.RegisterProduct(
		owner, productId, name, c.String("description"),
		origin, category,
		c.StringSlice("tag"), certifications, mediaHashes, custom,
	)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "product", product)
	return nil
}

func runInfo(c *cli.Context) error {

	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}

	product, err := tracker.GetProduct(productId)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "product", product)
	return nil
}

func runHistory(c *cli.Context) error {

	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}

	eventIds, err := tracker.GetProductEventIdsPaginated(productId, c.Uint64("offset"), c.Uint64("limit"))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "eventIds", eventIds)
	return nil
}

func runEvent(c *cli.Context) error {

	eventId := c.Uint64("event")
	if 0 == eventId {
		return fmt.Errorf("missing event id, use: --event=NUMBER")
	}

	event, err := tracker.GetEvent(eventId)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "event", event)
	return nil
}

func runAddEvent(c *cli.Context) error {

	actor, err := checkIdentity(c.String("actor"), "actor")
	if nil != err {
		return err
	}
	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	eventType, err := checkRequired(c.String("type"), "type")
	if nil != err {
		return err
	}
	dataHash, err := checkDigest(c.String("hash"))
	if nil != err {
		return err
	}

	eventId, err := tracker.AddTrackingEvent(actor, productId, record.Symbol(eventType), dataHash, c.String("note"))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "eventId", eventId)
	return nil
}

func runTransfer(c *cli.Context) error {

	owner, err := checkIdentity(c.String("owner"), "owner")
	if nil != err {
		return err
	}
	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	receiver, err := checkIdentity(c.String("receiver"), "receiver")
	if nil != err {
		return err
	}

	if err := tracker.TransferProduct(owner, productId, receiver); nil != err {
		return err
	}

	printJson(c.App.Writer, "transferred", productId)
	return nil
}

func runGrant(c *cli.Context) error {
	return changeGrant(c, true)
}

func runRevoke(c *cli.Context) error {
	return changeGrant(c, false)
}

func changeGrant(c *cli.Context, add bool) error {

	owner, err := checkIdentity(c.String("owner"), "owner")
	if nil != err {
		return err
	}
	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	actor, err := checkIdentity(c.String("actor"), "actor")
	if nil != err {
		return err
	}

	if add {
		err = tracker.AddAuthorizedActor(owner, productId, actor)
	} else {
		err = tracker.RemoveAuthorizedActor(owner, productId, actor)
	}
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "authorized", add)
	return nil
}

func runActivate(c *cli.Context) error {
	return changeActive(c, true)
}

func runDeactivate(c *cli.Context) error {
	return changeActive(c, false)
}

func changeActive(c *cli.Context, active bool) error {

	owner, err := checkIdentity(c.String("owner"), "owner")
	if nil != err {
		return err
	}
	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}

	if err := tracker.SetProductActive(owner, productId, active); nil != err {
		return err
	}

	printJson(c.App.Writer, "active", active)
	return nil
}

func runAuthorized(c *cli.Context) error {

	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	actor, err := checkIdentity(c.String("actor"), "actor")
	if nil != err {
		return err
	}

	authorized, err := tracker.IsAuthorized(productId, actor)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "authorized", authorized)
	return nil
}

func runList(c *cli.Context) error {

	products, err := tracker.GetAllProducts(c.Uint64("offset"), c.Uint64("limit"))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "products", products)
	return nil
}

func runOwned(c *cli.Context) error {

	owner, err := checkIdentity(c.String("owner"), "owner")
	if nil != err {
		return err
	}

	products, err := tracker.GetProductsByOwner(owner, c.Uint64("offset"), c.Uint64("limit"))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "products", products)
	return nil
}

func runOrigin(c *cli.Context) error {

	origin, err := checkRequired(c.String("origin"), "origin")
	if nil != err {
		return err
	}

	products, err := tracker.GetProductsByOrigin(origin, c.Uint64("offset"), c.Uint64("limit"))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "products", products)
	return nil
}

func runTyped(c *cli.Context) error {

	productId, err := checkRequired(c.String("product"), "product")
	if nil != err {
		return err
	}
	eventType, err := checkRequired(c.String("type"), "type")
	if nil != err {
		return err
	}

	eventIds, err := tracker.GetEventIdsByType(productId, record.Symbol(eventType), c.Uint64("offset"), c.Uint64("limit"))
	if nil != err {
		return err
	}
	count, err := tracker.EventCountByType(productId, record.Symbol(eventType))
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "typed", struct {
		EventIds []uint64 `json:"eventIds"`
		Total    uint64   `json:"total"`
	}{
		EventIds: eventIds,
		Total:    count,
	})
	return nil
}

func runStats(c *cli.Context) error {

	stats, err := tracker.GetStats()
	if nil != err {
		return err
	}

	printJson(c.App.Writer, "stats", stats)
	return nil
}

// argument checks

func checkRequired(value string, name string) (string, error) {
	if "" == value {
		return "", fmt.Errorf("missing %s, use: --%s=VALUE", name, name)
	}
	return value, nil
}

func checkIdentity(value string, name string) (identity.Identity, error) {
	if "" == value {
		return identity.Identity{}, fmt.Errorf("missing %s, use: --%s=KEY", name, name)
	}
	return identity.FromBase58(value)
}

func checkDigest(value string) (record.Digest, error) {
	var digest record.Digest
	if "" == value {
		return digest, fmt.Errorf("missing hash, use: --hash=HEX")
	}
	buffer, err := hex.DecodeString(value)
	if nil != err {
		return digest, err
	}
	return record.DigestFromBytes(buffer)
}

func checkDigestList(values []string) ([]record.Digest, error) {
	if 0 == len(values) {
		return nil, nil
	}
	digests := make([]record.Digest, len(values))
	for i, value := range values {
		buffer, err := hex.DecodeString(value)
		if nil != err {
			return nil, err
		}
		digest, err := record.DigestFromBytes(buffer)
		if nil != err {
			return nil, err
		}
		digests[i] = digest
	}
	return digests, nil
}

func checkCustom(values []string) (map[record.Symbol]string, error) {
	if 0 == len(values) {
		return nil, nil
	}
	custom := make(map[record.Symbol]string, len(values))
	for _, value := range values {
		pair := strings.SplitN(value, "=", 2)
		if 2 != len(pair) {
			return nil, fmt.Errorf("custom: %q is not KEY=VALUE", value)
		}
		custom[record.Symbol(pair[0])] = pair[1]
	}
	return custom, nil
}
