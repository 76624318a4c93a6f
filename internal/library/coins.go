package library

import "Rabscootle/internal/model"

// coins are the Kraken USD markets the crypto command knows about.
var coins = []model.Candidate{
	{Name: "Bitcoin", Value: "btcusd"},
	{Name: "Ethereum", Value: "ethusd"},
	{Name: "Polygon", Value: "maticusd"},
	{Name: "Cardano", Value: "adausd"},
	{Name: "Dogecoin", Value: "dogeusd"},
	{Name: "Ripple", Value: "xrpusd"},
	{Name: "Polkadot", Value: "dotusd"},
	{Name: "Ethereum Classic", Value: "etcusd"},
	{Name: "Litecoin", Value: "ltcusd"},
	{Name: "Chainlink", Value: "linkusd"},
	{Name: "EOSIO", Value: "eosusd"},
	{Name: "Filecoin", Value: "filusd"},
	{Name: "Bitcoin Cash", Value: "bchusd"},
	{Name: "TRON", Value: "trxusd"},
	{Name: "Lumen", Value: "xlmusd"},
	{Name: "Uniswap", Value: "uniusd"},
	{Name: "Sushiswap", Value: "sushiusd"},
	{Name: "Aave", Value: "aaveusd"},
	{Name: "Gnosis", Value: "gnousd"},
	{Name: "Augur (REP)", Value: "repusd"},
	{Name: "Zcash", Value: "zecusd"},
	{Name: "Monero", Value: "xmrusd"},
	{Name: "Dash", Value: "dashusd"},
	{Name: "Tether", Value: "usdtusd"},
	{Name: "Qtum", Value: "qtumusd"},
	{Name: "Tezos", Value: "xtzusd"},
	{Name: "Cosmos", Value: "atomusd"},
	{Name: "Basic Attention", Value: "batusd"},
	{Name: "Waves", Value: "wavesusd"},
	{Name: "ICON", Value: "icxusd"},
	{Name: "Siacoin", Value: "scusd"},
	{Name: "OMG Network", Value: "omgusd"},
	{Name: "Paxos Gold", Value: "paxgusd"},
	{Name: "Nano", Value: "nanousd"},
	{Name: "Lisk", Value: "lskusd"},
	{Name: "Dai", Value: "daiusd"},
	{Name: "Enzyme Finance", Value: "mlnusd"},
	{Name: "USD Coin", Value: "usdcusd"},
	{Name: "Algorand", Value: "algousd"},
	{Name: "Orchid", Value: "oxtusd"},
	{Name: "Kava", Value: "kavausd"},
	{Name: "Storj", Value: "storjusd"},
	{Name: "Compound", Value: "compusd"},
	{Name: "Kyber Network", Value: "kncusd"},
	{Name: "Augur V2", Value: "repv2usd"},
	{Name: "Synthetix", Value: "snxusd"},
	{Name: "Curve DAO Token", Value: "crvusd"},
	{Name: "Balancer", Value: "balusd"},
	{Name: "Kusama", Value: "ksmusd"},
	{Name: "Yearn Finance", Value: "yfiusd"},
	{Name: "Keep Network", Value: "keepusd"},
	{Name: "Aragon", Value: "antusd"},
	{Name: "tBTC", Value: "tbtcusd"},
	{Name: "Decentraland", Value: "manausd"},
	{Name: "Graph", Value: "grtusd"},
	{Name: "Flow", Value: "flowusd"},
	{Name: "Energy Web Token", Value: "ewtusd"},
	{Name: "OCEAN", Value: "oceanusd"},
	{Name: "0x", Value: "zrxusd"},
	{Name: "Ren", Value: "renusd"},
	{Name: "Aavegotchi", Value: "ghstusd"},
	{Name: "Rarible", Value: "rariusd"},
	{Name: "Sand", Value: "sandusd"},
	{Name: "Enjin", Value: "enjusd"},
	{Name: "Livepeer", Value: "lptusd"},
	{Name: "Ankr", Value: "ankrusd"},
	{Name: "Bancor", Value: "bntusd"},
}

// Coins returns a copy of the coin list in display order.
func Coins() []model.Candidate {
	out := make([]model.Candidate, len(coins))
	copy(out, coins)
	return out
}

// FindCoin looks a coin up by its pair value.
func FindCoin(value string) (model.Candidate, bool) {
	for _, c := range coins {
		if c.Value == value {
			return c, true
		}
	}
	return model.Candidate{}, false
}
