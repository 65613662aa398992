package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"github.com/aurum-ledger/aurum/address"
	"github.com/aurum-ledger/aurum/config"
	"github.com/aurum-ledger/aurum/ledger"
	"github.com/aurum-ledger/aurum/models"
	"github.com/aurum-ledger/aurum/models/repo"
	"github.com/aurum-ledger/aurum/types"
	"github.com/aurum-ledger/aurum/version"
)

var mainLog = logging.Logger("main")

const defRepoPath = "~/.aurum-offers"

var (
	RepoFlag = &cli.StringFlag{
		Name:    "repo",
		EnvVars: []string{"AURUM_OFFERS_PATH"},
		Value:   defRepoPath,
	}

	AccountFlag = &cli.StringFlag{
		Name:     "account",
		Usage:    "account identifier in its textual form",
		Required: true,
	}

	SequenceFlag = &cli.Uint64Flag{
		Name:     "sequence",
		Usage:    "per-account offer number",
		Required: true,
	}

	PaysFlag = &cli.StringFlag{
		Name:     "pays",
		Usage:    "taker-pays currency, 'native' or CODE:ISSUER",
		Required: true,
	}

	GetsFlag = &cli.StringFlag{
		Name:     "gets",
		Usage:    "taker-gets currency, 'native' or CODE:ISSUER",
		Required: true,
	}
)

func main() {
	app := &cli.App{
		Name:                 "aurum-offers",
		Usage:                "inspect and manage the ledger offer table",
		Version:              version.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			RepoFlag,
		},
		Commands: []*cli.Command{
			initCmd,
			migrateCmd,
			dropCmd,
			bookCmd,
			offersCmd,
			getOfferCmd,
			addOfferCmd,
			cancelOfferCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		mainLog.Fatal(err)
	}
}

func loadConfig(cctx *cli.Context) (*config.OffersConfig, error) {
	cfg := config.DefaultOffersConfig()
	cfg.HomeDir = cctx.String("repo")
	cfgPath, err := cfg.ConfigPath()
	if err != nil {
		return nil, err
	}
	if err := config.LoadConfig(cfgPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openRepo(cctx *cli.Context) (repo.Repo, error) {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return nil, err
	}
	if cfg.Db.Type == "sqlite" {
		p, err := cfg.SqlitePath()
		if err != nil {
			return nil, err
		}
		cfg.Db.Sqlite.Path = p
	}
	return models.SetDataBase(&cfg.Db)
}

var initCmd = &cli.Command{
	Name:  "init",
	Usage: "write a default config and provision the offer schema",
	Action: func(cctx *cli.Context) error {
		cfg := config.DefaultOffersConfig()
		cfg.HomeDir = cctx.String("repo")
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck
		if err := models.AutoMigrate(r); err != nil {
			return err
		}
		home, err := cfg.HomePath()
		if err != nil {
			return err
		}
		mainLog.Infof("initialized offers repo at %s", home)
		return nil
	},
}

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "provision the offer schema, safe to run on a provisioned store",
	Action: func(cctx *cli.Context) error {
		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck
		return models.AutoMigrate(r)
	},
}

var dropCmd = &cli.Command{
	Name:   "drop-schema",
	Usage:  "remove the offer table and everything in it",
	Hidden: true,
	Action: func(cctx *cli.Context) error {
		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck
		return r.DropSchema()
	},
}

var bookCmd = &cli.Command{
	Name:  "book",
	Usage: "list the order book for a currency pair in canonical order",
	Flags: []cli.Flag{
		PaysFlag,
		GetsFlag,
		&cli.IntFlag{Name: "limit", Value: 20},
		&cli.IntFlag{Name: "offset", Value: 0},
	},
	Action: func(cctx *cli.Context) error {
		pays, err := parseCurrency(cctx.String("pays"))
		if err != nil {
			return err
		}
		gets, err := parseCurrency(cctx.String("gets"))
		if err != nil {
			return err
		}

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck

		offers, err := r.OfferRepo().ListBestOffers(cctx.Context,
			cctx.Int("limit"), cctx.Int("offset"), pays, gets)
		if err != nil {
			return err
		}
		for _, o := range offers {
			fmt.Printf("%s\t%s\t%d\t%s\t%d\n",
				o.Price.Decimal(), o.Price, o.Amount,
				address.Encode(address.VersionAccountID, o.AccountID), o.Sequence)
		}
		return nil
	},
}

var offersCmd = &cli.Command{
	Name:  "offers",
	Usage: "list all offers owned by an account",
	Flags: []cli.Flag{
		AccountFlag,
	},
	Action: func(cctx *cli.Context) error {
		account, err := address.Decode(address.VersionAccountID, cctx.String("account"))
		if err != nil {
			return err
		}

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck

		offers, err := r.OfferRepo().ListOffersByAccount(cctx.Context, account)
		if err != nil {
			return err
		}
		for _, o := range offers {
			fmt.Printf("%d\t%s -> %s\t%d\t%s\t%s\n",
				o.Sequence, o.TakerPays, o.TakerGets, o.Amount, o.Price, o.Index())
		}
		return nil
	},
}

// displayOffer is the json form printed by the get command.
type displayOffer struct {
	Account   string `json:"account"`
	Sequence  uint32 `json:"sequence"`
	TakerPays string `json:"takerPays"`
	TakerGets string `json:"takerGets"`
	Amount    int64  `json:"amount"`
	Price     string `json:"price"`
	PriceKey  int64  `json:"priceKey"`
	Flags     uint32 `json:"flags"`
	Index     string `json:"index"`
}

var getOfferCmd = &cli.Command{
	Name:  "get",
	Usage: "show a single offer as json",
	Flags: []cli.Flag{
		AccountFlag,
		SequenceFlag,
	},
	Action: func(cctx *cli.Context) error {
		account, err := address.Decode(address.VersionAccountID, cctx.String("account"))
		if err != nil {
			return err
		}

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck

		offer, err := r.OfferRepo().GetOffer(cctx.Context, account, uint32(cctx.Uint64("sequence")))
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(displayOffer{
			Account:   address.Encode(address.VersionAccountID, offer.AccountID),
			Sequence:  offer.Sequence,
			TakerPays: offer.TakerPays.String(),
			TakerGets: offer.TakerGets.String(),
			Amount:    offer.Amount,
			Price:     offer.Price.String(),
			PriceKey:  offer.PriceKey(),
			Flags:     offer.Flags,
			Index:     offer.Index().String(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var addOfferCmd = &cli.Command{
	Name:  "add",
	Usage: "insert a new offer row",
	Flags: []cli.Flag{
		AccountFlag,
		SequenceFlag,
		PaysFlag,
		GetsFlag,
		&cli.Int64Flag{Name: "amount", Required: true},
		&cli.StringFlag{Name: "price", Usage: "rational price N/D", Required: true},
		&cli.UintFlag{Name: "flags"},
	},
	Action: func(cctx *cli.Context) error {
		account, err := address.Decode(address.VersionAccountID, cctx.String("account"))
		if err != nil {
			return err
		}
		pays, err := parseCurrency(cctx.String("pays"))
		if err != nil {
			return err
		}
		gets, err := parseCurrency(cctx.String("gets"))
		if err != nil {
			return err
		}
		price, err := parsePrice(cctx.String("price"))
		if err != nil {
			return err
		}

		offer := &types.Offer{
			AccountID: account,
			Sequence:  uint32(cctx.Uint64("sequence")),
			TakerPays: pays,
			TakerGets: gets,
			Amount:    cctx.Int64("amount"),
			Price:     price,
			Flags:     uint32(cctx.Uint("flags")),
		}

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck

		delta := ledger.NewDelta()
		err = r.Transaction(func(tx repo.TxRepo) error {
			return tx.OfferRepo().AddOffer(cctx.Context, offer, delta)
		})
		if err != nil {
			return err
		}
		mainLog.Infof("added offer %s", offer.Index())
		return nil
	},
}

var cancelOfferCmd = &cli.Command{
	Name:  "cancel",
	Usage: "remove an offer row",
	Flags: []cli.Flag{
		AccountFlag,
		SequenceFlag,
	},
	Action: func(cctx *cli.Context) error {
		account, err := address.Decode(address.VersionAccountID, cctx.String("account"))
		if err != nil {
			return err
		}
		sequence := uint32(cctx.Uint64("sequence"))

		r, err := openRepo(cctx)
		if err != nil {
			return err
		}
		defer r.Close() //nolint:errcheck

		delta := ledger.NewDelta()
		err = r.Transaction(func(tx repo.TxRepo) error {
			offer, err := tx.OfferRepo().GetOffer(cctx.Context, account, sequence)
			if err != nil {
				return err
			}
			return tx.OfferRepo().DeleteOffer(cctx.Context, offer, delta)
		})
		if err != nil {
			return err
		}
		mainLog.Infof("cancelled %d offer(s)", len(delta.Deleted))
		return nil
	},
}

// parseCurrency accepts "native" or "CODE:ISSUER" with ISSUER in its textual
// form.
func parseCurrency(s string) (types.Currency, error) {
	if strings.EqualFold(s, "native") {
		return types.NativeCurrency(), nil
	}
	code, issuerStr, found := strings.Cut(s, ":")
	if !found || code == "" || len(code) > types.CurrencyCodeLen {
		return types.Currency{}, fmt.Errorf("invalid currency %q, want 'native' or CODE:ISSUER", s)
	}
	issuer, err := address.Decode(address.VersionAccountID, issuerStr)
	if err != nil {
		return types.Currency{}, err
	}
	return types.IssuedCurrency(code, issuer), nil
}

func parsePrice(s string) (types.Price, error) {
	nStr, dStr, found := strings.Cut(s, "/")
	if !found {
		return types.Price{}, fmt.Errorf("invalid price %q, want N/D", s)
	}
	n, err := strconv.ParseInt(nStr, 10, 32)
	if err != nil {
		return types.Price{}, err
	}
	d, err := strconv.ParseInt(dStr, 10, 32)
	if err != nil {
		return types.Price{}, err
	}
	if d <= 0 {
		return types.Price{}, fmt.Errorf("price denominator must be positive")
	}
	return types.Price{N: int32(n), D: int32(d)}, nil
}
