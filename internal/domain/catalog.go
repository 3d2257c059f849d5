package domain

import "sort"

// IncomeNature classifies the good or service behind a payment. Each entry maps
// onto exactly one fiscal code.
type IncomeNature struct {
	Code       string `json:"code"`
	FiscalCode string `json:"fiscal_code"`
	Label      string `json:"label"`
}

var incomeNatures = []IncomeNature{
	{"17001", "6147", "Alimentação"},
	{"17002", "6147", "Energia elétrica"},
	{"17003", "6147", "Serviços prestados com emprego de materiais"},
	{"17004", "6147", "Construção Civil por empreitada com emprego de materiais"},
	{"17005", "6147", "Serviços hospitalares de que trata o art. 30 da IN RFB nº 1.234/2012"},
	{"17006", "6147", "Transporte de cargas, exceto os relacionados na natureza de rendimento '17017'"},
	{"17007", "6147", "Serviços de auxílio diagnóstico e terapia de que trata o art. 31 da IN RFB nº 1.234/2012"},
	{"17008", "6147", "Produtos farmacêuticos, de perfumaria, de toucador ou de higiene pessoal, exceto os relacionados de '17019' a '17022'"},
	{"17009", "6147", "Mercadorias e bens em geral"},
	{"17010", "9060", "Gasolina, óleo diesel, GLP, querosene de aviação e demais derivados de petróleo adquiridos de refinarias, produtores, importadores, distribuidor ou varejista"},
	{"17011", "9060", "Álcool etílico hidratado, inclusive para fins carburantes, adquirido de produtor, importador ou distribuidor"},
	{"17012", "9060", "Biodiesel adquirido de produtor ou importador"},
	{"17013", "8739", "Gasolina, exceto de aviação, óleo diesel, GLP e querosene de aviação adquiridos de distribuidores e comerciantes varejistas"},
	{"17014", "8739", "Álcool etílico hidratado nacional adquirido de comerciante varejista"},
	{"17015", "8739", "Biodiesel adquirido de distribuidores e comerciantes varejistas"},
	{"17016", "8739", "Biodiesel adquirido de produtor detentor do selo 'Combustível Social'"},
	{"17017", "8767", "Transporte internacional de cargas efetuado por empresas nacionais"},
	{"17018", "8767", "Estaleiros navais brasileiros nas atividades de construção, conservação, modernização, conversão e reparo de embarcações registradas no REB"},
	{"17019", "8767", "Produtos de perfumaria, de toucador e de higiene pessoal do § 1º do art. 22 da IN RFB nº 1.234/2012, adquiridos de distribuidores e varejistas"},
	{"17020", "8767", "Produtos a que se refere o § 2º do art. 22 da IN RFB nº 1.234/2012"},
	{"17021", "8767", "Produtos de que tratam as alíneas 'c' a 'k' do inciso I do art. 5º da IN RFB nº 1.234/2012"},
	{"17022", "8767", "Outros produtos ou serviços beneficiados com isenção, não incidência ou alíquota zero da Cofins e do PIS/Pasep"},
	{"17023", "8850", "Passagens aéreas, rodoviárias e demais serviços de transporte de passageiros, exceto transporte internacional"},
	{"17024", "8850", "Transporte internacional de passageiros efetuado por empresas nacionais"},
	{"17025", "8863", "Serviços prestados por associações profissionais ou assemelhadas e cooperativas"},
	{"17026", "8863", "Serviços prestados por bancos, sociedades de crédito, seguradoras e entidades abertas de previdência complementar"},
	{"17027", "8863", "Seguro Saúde"},
	{"17028", "6190", "Serviços de abastecimento de água"},
	{"17029", "6190", "Telefone"},
	{"17030", "6190", "Correio e telégrafos"},
	{"17031", "6190", "Vigilância"},
	{"17032", "6190", "Limpeza"},
	{"17033", "6190", "Locação de mão de obra"},
	{"17034", "6190", "Intermediação de negócios"},
	{"17035", "6190", "Administração, locação ou cessão de bens imóveis, móveis e direitos de qualquer natureza"},
	{"17036", "6190", "Factoring"},
	{"17037", "6190", "Plano de saúde humano, veterinário ou odontológico com valores fixos por servidor, empregado ou animal"},
	{"17038", "6190", "Pagamento efetuado a sociedade cooperativa pelo fornecimento de bens, conforme art. 24 da IN 1.234/2012"},
	{"17039", "6190", "Serviços prestados com emprego de materiais, inclusive o da alínea 'c' do inciso II do art. 27 da IN 1.234/2012"},
	{"17040", "6190", "Demais serviços"},
}

var incomeNatureIndex = func() map[string]IncomeNature {
	m := make(map[string]IncomeNature, len(incomeNatures))
	for _, n := range incomeNatures {
		m[n.Code] = n
	}
	return m
}()

// LookupIncomeNature returns the catalog entry for code.
func LookupIncomeNature(code string) (IncomeNature, error) {
	n, ok := incomeNatureIndex[code]
	if !ok {
		return IncomeNature{}, &IncomeNatureError{Code: code}
	}
	return n, nil
}

// IncomeNatures returns a copy of the catalog ordered by code.
func IncomeNatures() []IncomeNature {
	out := make([]IncomeNature, len(incomeNatures))
	copy(out, incomeNatures)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// IncomeNaturesForFiscalCode returns the entries sharing fiscalCode.
func IncomeNaturesForFiscalCode(fiscalCode string) []IncomeNature {
	var out []IncomeNature
	for _, n := range incomeNatures {
		if n.FiscalCode == fiscalCode {
			out = append(out, n)
		}
	}
	return out
}

// ResolveFiscalCode returns the fiscal code to apply for an income nature.
// An empty requested code is filled from the catalog; a non-empty one must agree with it.
func ResolveFiscalCode(incomeNature, requested string) (string, error) {
	n, err := LookupIncomeNature(incomeNature)
	if err != nil {
		return "", err
	}
	if requested == "" || requested == n.FiscalCode {
		return n.FiscalCode, nil
	}
	return "", &FiscalCodeError{FiscalCode: requested, IncomeNature: incomeNature, Expected: n.FiscalCode}
}
